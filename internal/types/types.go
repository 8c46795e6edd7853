// Package types implements the type algebra, substitutions, unifier and
// constraint solver of the language's Hindley-Milner core, along with the
// structured error taxonomy shared by the resolver and the inferrer.
package types

import (
	"fmt"
	"strings"
)

// TV is a type-variable tag, globally unique within a single inference run.
type TV string

// Type is the sum of the four forms the spec fixes: TVar, TCon, TFunc, TPtr.
type Type interface {
	fmt.Stringer
	typeNode()
}

// TVar is a type variable, fresh-generated as _a, _b, ... by freshname.
type TVar struct {
	Name TV
}

func (*TVar) typeNode()        {}
func (t *TVar) String() string { return string(t.Name) }

// TCon is a named type constructor applied to zero or more type arguments.
// Equality is structural (name + args), matching the spec's data model.
type TCon struct {
	Name string
	Args []Type
}

func (*TCon) typeNode() {}
func (t *TCon) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

// TFunc is a function type; arity is fixed by len(Params).
type TFunc struct {
	Params []Type
	Return Type
}

func (*TFunc) typeNode() {}
func (t *TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Return.String())
}

// TPtr is a reference/pointer type. A reference always targets a previously
// existing variable location (enforced by the inferrer's NonReferencable check).
type TPtr struct {
	Inner Type
}

func (*TPtr) typeNode()        {}
func (t *TPtr) String() string { return "&" + t.Inner.String() }

// Distinguished constant types. These are TCon values with no arguments;
// Equal compares structurally so any two TCon{"Int32", nil} values are equal
// without needing to share an identity.
var (
	TInt32   Type = &TCon{Name: "Int32"}
	TFloat64 Type = &TCon{Name: "Float64"}
	TStr     Type = &TCon{Name: "Str"}
	TChar    Type = &TCon{Name: "Char"}
	TBool    Type = &TCon{Name: "Bool"}
	TUnit    Type = &TCon{Name: "Unit"}
)

// Equal reports whether two types are structurally identical. It does not
// unify — TVar names must match exactly, it does not bind anything.
func Equal(a, b Type) bool {
	switch a := a.(type) {
	case *TVar:
		b, ok := b.(*TVar)
		return ok && a.Name == b.Name
	case *TCon:
		b, ok := b.(*TCon)
		if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case *TFunc:
		b, ok := b.(*TFunc)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return Equal(a.Return, b.Return)
	case *TPtr:
		b, ok := b.(*TPtr)
		return ok && Equal(a.Inner, b.Inner)
	default:
		return false
	}
}

// Tvs yields the set of free type variables of a type.
func Tvs(t Type) map[TV]bool {
	free := make(map[TV]bool)
	collectTvs(t, free)
	return free
}

func collectTvs(t Type, out map[TV]bool) {
	switch t := t.(type) {
	case *TVar:
		out[t.Name] = true
	case *TCon:
		for _, a := range t.Args {
			collectTvs(a, out)
		}
	case *TFunc:
		for _, p := range t.Params {
			collectTvs(p, out)
		}
		collectTvs(t.Return, out)
	case *TPtr:
		collectTvs(t.Inner, out)
	}
}

// TvsList is Tvs over a list of types, unioned.
func TvsList(ts []Type) map[TV]bool {
	free := make(map[TV]bool)
	for _, t := range ts {
		for v := range Tvs(t) {
			free[v] = true
		}
	}
	return free
}
