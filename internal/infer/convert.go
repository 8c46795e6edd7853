package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/types"
)

// baseTypeConstants maps the base type keywords that have a distinguished
// Type-algebra constant (§3); the remaining base keywords accepted by the
// resolver (i8, i16, i64, u8..u64, f16, f32) have no dedicated constant and
// become ordinary nullary TCons named after the keyword, which is exactly
// what TCon already is: "a named type constructor applied to zero or more
// type arguments".
var baseTypeConstants = map[string]types.Type{
	"i32":  types.TInt32,
	"f64":  types.TFloat64,
	"str":  types.TStr,
	"char": types.TChar,
	"bool": types.TBool,
	"unit": types.TUnit,
}

// baseTypeNames mirrors resolve.baseTypeNames — duplicated rather than
// imported since it is a 15-entry lexical fact both packages need
// independently and importing resolve from infer (or vice versa) would
// couple two otherwise-separate passes over the same spec-fixed list.
var baseTypeNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f16": true, "f32": true, "f64": true,
	"char": true, "bool": true, "unit": true, "str": true,
}

// convertAnnot rewrites a surface TypeAnnot into a types.Type. typeVars maps
// an in-scope type parameter name to the TV it stands for; pass nil outside
// a type declaration's constructor list, where no such parameters exist.
func convertAnnot(annot ast.TypeAnnot, typeVars map[string]types.TV) types.Type {
	if annot.Ptr {
		return &types.TPtr{Inner: convertAnnot(annot.Args[0], typeVars)}
	}
	if tv, ok := typeVars[annot.Name.Text]; ok {
		return &types.TVar{Name: tv}
	}
	if c, ok := baseTypeConstants[annot.Name.Text]; ok {
		return c
	}
	if baseTypeNames[annot.Name.Text] {
		return &types.TCon{Name: annot.Name.Text}
	}
	args := make([]types.Type, len(annot.Args))
	for i, a := range annot.Args {
		args[i] = convertAnnot(a, typeVars)
	}
	return &types.TCon{Name: annot.Name.String(), Args: args}
}

func litType(kind ast.LitKind) types.Type {
	switch kind {
	case ast.IntLit:
		return types.TInt32
	case ast.FloatLit:
		return types.TFloat64
	case ast.StrLit:
		return types.TStr
	case ast.CharLit:
		return types.TChar
	case ast.BoolLit:
		return types.TBool
	default:
		return types.TUnit
	}
}
