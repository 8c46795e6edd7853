package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/types"
)

// applySubstitution rewrites every expression's recorded type through sigma,
// across every module and function body in prog. inferFn and inferExpr both
// stamp types as they go, but each function's own local solve only sees its
// own constraint window — the driver's final global solve can still resolve
// variables a local solve left free (e.g. a parameter only pinned by a
// sibling's call site), so this sweep is what makes the final tree consistent.
func applySubstitution(prog *ast.Program, sigma types.Substitution) {
	for i := range prog.Modules {
		m := &prog.Modules[i]
		for _, tl := range m.TopLevels {
			switch d := tl.(type) {
			case *ast.FuncDecl:
				applyExpr(d.Body, sigma)
			case *ast.OperDecl:
				applyExpr(d.Body, sigma)
			}
		}
	}
}

func applyExpr(e ast.Expr, sigma types.Substitution) {
	if e == nil {
		return
	}
	e.SetType(types.Apply(sigma, e.GetType()))

	switch d := e.(type) {
	case *ast.Lit, *ast.Ident:
		// leaves
	case *ast.Assign:
		applyExpr(d.Lhs, sigma)
		applyExpr(d.Rhs, sigma)
	case *ast.Block:
		for _, decl := range d.Decls {
			switch dd := decl.(type) {
			case *ast.DVar:
				applyExpr(dd.Value, sigma)
			case *ast.DExpr:
				applyExpr(dd.Value, sigma)
			}
		}
		applyExpr(d.Result, sigma)
	case *ast.If:
		applyExpr(d.Cond, sigma)
		applyExpr(d.Then, sigma)
		applyExpr(d.Else, sigma)
	case *ast.While:
		applyExpr(d.Cond, sigma)
		applyExpr(d.Body, sigma)
	case *ast.Match:
		applyExpr(d.Scrutinee, sigma)
		for i := range d.Arms {
			applyExpr(d.Arms[i].Body, sigma)
		}
	case *ast.BinOp:
		applyExpr(d.Left, sigma)
		applyExpr(d.Right, sigma)
	case *ast.UnOp:
		applyExpr(d.Operand, sigma)
	case *ast.Call:
		applyExpr(d.Func, sigma)
		for _, a := range d.Args {
			applyExpr(a, sigma)
		}
	case *ast.Deref:
		applyExpr(d.Operand, sigma)
	case *ast.Ref:
		applyExpr(d.Operand, sigma)
	case *ast.Cast:
		applyExpr(d.Operand, sigma)
	case *ast.SizeOf:
		// leaf aside from its own type, already applied above
	case *ast.Closure:
		applyExpr(d.Body, sigma)
	case *ast.Return:
		applyExpr(d.Value, sigma)
	}
}
