package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/types"
)

// inferPattern implements §4.5's pattern-inference rules, returning the
// pattern's type and the bindings it introduces (keyed the same way
// scopedKey keys every other local binding, so the caller can extend ctx.Env
// with them directly).
func (c *InferCtx) inferPattern(p ast.Pattern) (types.Type, map[string]types.Type, error) {
	switch pp := p.(type) {
	case *ast.PVar:
		v := c.freshVar()
		return v, map[string]types.Type{c.scopedKey(pp.Name): v}, nil

	case *ast.PLit:
		return litType(pp.Kind), nil, nil

	case *ast.PWild:
		return c.freshVar(), nil, nil

	case *ast.PCon:
		conType, ok := c.lookupName(pp.Con.Key())
		if !ok {
			return nil, nil, types.NewUndefined(pp.Pos, pp.Con.String())
		}
		if len(pp.Args) == 0 {
			beta := c.freshVar()
			c.emit(pp.Pos, beta, conType)
			return beta, nil, nil
		}
		argVars := make([]types.Type, len(pp.Args))
		bindings := make(map[string]types.Type, len(pp.Args))
		for i, name := range pp.Args {
			v := c.freshVar()
			argVars[i] = v
			bindings[c.scopedKey(name)] = v
		}
		beta := c.freshVar()
		c.emit(pp.Pos, &types.TFunc{Params: argVars, Return: beta}, conType)
		return beta, bindings, nil

	default:
		return nil, nil, types.NewNotImplemented(p.Position(), "unknown pattern form")
	}
}
