package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/freshname"
	"github.com/sunholo/juno/internal/types"
)

// Result is what a driver learns from analysis beyond the typed tree: the
// finalized scheme of every top-level function and operator (keyed by
// qualified name key) and whether any module defined a main function.
type Result struct {
	Schemes    map[string]*types.Scheme
	MainExists bool
}

// Analyze runs the full inference pass over a resolved program (§4.5
// driver): pre-pass registration, then inferFn over every function and
// operator in source order, then one global solve over the accumulated
// constraint log, then a final substitution sweep over the whole tree.
func Analyze(prog *ast.Program) (*ast.Program, error) {
	typed, _, err := AnalyzeWithSchemes(prog)
	return typed, err
}

// AnalyzeWithSchemes is Analyze plus the driver-facing Result.
func AnalyzeWithSchemes(prog *ast.Program) (*ast.Program, *Result, error) {
	c := NewCtx()

	if err := c.prepass(prog); err != nil {
		return nil, nil, err
	}

	for i := range prog.Modules {
		m := &prog.Modules[i]
		c.curTmpScope = freshname.NewGenerator()

		for _, tl := range m.TopLevels {
			switch d := tl.(type) {
			case *ast.FuncDecl:
				if d.Name == "main" {
					c.MainExists = true
				}
				if err := c.inferFn(m.Path, d.Name, d.Params, d.RetAnnot, d.Body); err != nil {
					return nil, nil, err
				}
			case *ast.OperDecl:
				if err := c.inferFn(m.Path, d.Def.Symbol, d.Params, d.RetAnnot, d.Body); err != nil {
					return nil, nil, err
				}
			}
		}
	}

	sigma, err := types.Solve(c.Constraints)
	if err != nil {
		return nil, nil, err
	}

	applySubstitution(prog, sigma)

	res := &Result{Schemes: make(map[string]*types.Scheme), MainExists: c.MainExists}
	for i := range prog.Modules {
		m := &prog.Modules[i]
		for _, tl := range m.TopLevels {
			var name string
			switch d := tl.(type) {
			case *ast.FuncDecl:
				name = d.Name
			case *ast.OperDecl:
				name = d.Def.Symbol
			default:
				continue
			}
			key := ast.NewQualified(m.Path, name).Key()
			if b, ok := c.Env.Lookup(key); ok {
				res.Schemes[key] = types.ApplyScheme(sigma, b.Scheme)
			}
		}
	}
	return prog, res, nil
}
