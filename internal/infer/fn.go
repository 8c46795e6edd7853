package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/types"
)

// inferFn implements inferFn(name, params, retAnn, body) (§4.5), the six
// numbered steps verbatim: fresh parameters, local solve of the body's own
// constraint window, return/parameter annotation agreement, return-statement
// agreement, then finalization into the environment.
func (c *InferCtx) inferFn(modPath []string, name string, params []ast.Param, retAnnot *ast.TypeAnnot, body ast.Expr) error {
	qualKey := ast.NewQualified(modPath, name).Key()

	c.curModPath = modPath
	c.curLocalScope = nil
	c.pushScope(name)
	defer c.popScope()

	savedEnv := c.Env
	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		v := c.freshVar()
		paramTypes[i] = v
		c.Env = c.Env.Extend(c.scopedKey(p.Name), types.Binding{Scheme: types.Mono(v), Mutable: false})
	}

	bookmark := len(c.Constraints)
	if err := c.inferExpr(body); err != nil {
		c.Env = savedEnv
		return err
	}
	localConstraints := append([]types.Constraint{}, c.Constraints[bookmark:]...)

	sigma, err := types.Solve(localConstraints)
	if err != nil {
		c.Env = savedEnv
		return err
	}

	bodyType := types.Apply(sigma, body.GetType())
	funcMono := types.Apply(sigma, &types.TFunc{Params: paramTypes, Return: bodyType})

	if retAnnot != nil {
		annType := convertAnnot(*retAnnot, nil)
		c.emit(retAnnot.Pos, bodyType, annType)
	}
	for i, p := range params {
		if p.Annot == nil {
			continue
		}
		annType := convertAnnot(*p.Annot, nil)
		c.emit(p.Annot.Pos, types.Apply(sigma, paramTypes[i]), annType)
	}

	for _, ret := range collectReturns(body) {
		retType := types.TUnit
		if ret.Value != nil {
			retType = types.Apply(sigma, ret.Value.GetType())
		}
		c.emit(ret.Pos, bodyType, retType)
	}

	c.Env = savedEnv
	delete(c.TopLvlTmps, qualKey)
	c.Env = c.Env.Extend(qualKey, types.Binding{Scheme: types.Mono(funcMono), Mutable: false})
	return nil
}

// collectReturns walks body's full expression tree and gathers every
// ast.Return node, wherever it is nested — needed by inferFn step 5 (return
// agreement, §8 universal property 7).
func collectReturns(e ast.Expr) []*ast.Return {
	var out []*ast.Return
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch d := e.(type) {
		case *ast.Return:
			out = append(out, d)
			walk(d.Value)
		case *ast.Assign:
			walk(d.Lhs)
			walk(d.Rhs)
		case *ast.Block:
			for _, decl := range d.Decls {
				switch dd := decl.(type) {
				case *ast.DVar:
					walk(dd.Value)
				case *ast.DExpr:
					walk(dd.Value)
				}
			}
			walk(d.Result)
		case *ast.If:
			walk(d.Cond)
			walk(d.Then)
			walk(d.Else)
		case *ast.While:
			walk(d.Cond)
			walk(d.Body)
		case *ast.Match:
			walk(d.Scrutinee)
			for _, arm := range d.Arms {
				walk(arm.Body)
			}
		case *ast.BinOp:
			walk(d.Left)
			walk(d.Right)
		case *ast.UnOp:
			walk(d.Operand)
		case *ast.Call:
			walk(d.Func)
			for _, a := range d.Args {
				walk(a)
			}
		case *ast.Deref:
			walk(d.Operand)
		case *ast.Ref:
			walk(d.Operand)
		case *ast.Cast:
			walk(d.Operand)
		case *ast.Closure:
			walk(d.Body)
		}
	}
	walk(e)
	return out
}
