package ast

import (
	"strings"

	"github.com/sunholo/juno/internal/types"
)

// TypeAnnot is the surface-syntax reference to a type: a base type name
// (i8..i64, f32, f64, bool, str, ...), a user type name possibly applied to
// type arguments, a type variable (inside a type declaration's parameter
// list), or a reference via Ptr. It is resolved to an internal/types.Type by
// the inferrer once every name inside it has been qualified by the resolver.
type TypeAnnot struct {
	Pos  types.Pos
	Name Name
	Args []TypeAnnot
	Ptr  bool // when true, this annotation is "&Inner"; Args[0] is Inner
}

func (t TypeAnnot) Position() types.Pos { return t.Pos }

func (t TypeAnnot) String() string {
	if t.Ptr {
		return "&" + t.Args[0].String()
	}
	if len(t.Args) == 0 {
		return t.Name.String()
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name.String() + "<" + strings.Join(parts, ", ") + ">"
}

// PtrOf builds a reference-type annotation over inner.
func PtrOf(pos types.Pos, inner TypeAnnot) TypeAnnot {
	return TypeAnnot{Pos: pos, Ptr: true, Args: []TypeAnnot{inner}}
}
