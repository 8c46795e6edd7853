package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/types"
)

// prepass seeds top_lvl_tmps for every function/operator, registers every
// value constructor, and binds every extern's signature directly (§4.5
// top-level pre-pass + driver step 1). It runs once, across the whole
// program, before any function body is walked — this is what lets a
// reference anywhere type-check against a sibling defined later in source
// order or in another module.
func (c *InferCtx) prepass(prog *ast.Program) error {
	for i := range prog.Modules {
		m := &prog.Modules[i]
		for _, tl := range m.TopLevels {
			switch d := tl.(type) {
			case *ast.FuncDecl:
				key := ast.NewQualified(m.Path, d.Name).Key()
				c.TopLvlTmps[key] = c.freshVar()
			case *ast.OperDecl:
				key := ast.NewQualified(m.Path, d.Def.Symbol).Key()
				c.TopLvlTmps[key] = c.freshVar()
				c.Operators[d.Def.Symbol] = key
			case *ast.TypeDecl:
				if err := c.registerTypeDecl(m.Path, d); err != nil {
					return err
				}
			case *ast.ExternDecl:
				c.registerExtern(m.Path, d)
			}
		}
	}
	return nil
}

// registerTypeDecl registers every constructor of d in the environment with
// the monomorphic scheme Forall [] (...) described by §4.5, and rejects any
// constructor field whose type variable is absent from d's own parameter
// list (scenario S4, UndefinedTypeVariable).
func (c *InferCtx) registerTypeDecl(modPath []string, d *ast.TypeDecl) error {
	qualName := ast.NewQualified(modPath, d.Name).String()

	typeVars := make(map[string]types.TV, len(d.TypeParams))
	typeArgs := make([]types.Type, len(d.TypeParams))
	for i, p := range d.TypeParams {
		tv := types.TV("#" + qualName + "." + p)
		typeVars[p] = tv
		typeArgs[i] = &types.TVar{Name: tv}
	}
	declaredType := &types.TCon{Name: qualName, Args: typeArgs}

	for _, ctor := range d.Constructors {
		if bad := unresolvedTypeVars(ctor.Args, typeVars); len(bad) > 0 {
			return types.NewUndefinedTypeVariable(ctor.Pos, d.Name, bad)
		}

		var ctorType types.Type
		if len(ctor.Args) == 0 {
			ctorType = declaredType
		} else {
			argTypes := make([]types.Type, len(ctor.Args))
			for i, a := range ctor.Args {
				argTypes[i] = convertAnnot(a, typeVars)
			}
			ctorType = &types.TFunc{Params: argTypes, Return: declaredType}
		}

		key := ast.NewQualified(modPath, ctor.Name).Key()
		c.Env = c.Env.Extend(key, types.Binding{Scheme: types.Mono(ctorType), Mutable: false})
	}
	return nil
}

// unresolvedTypeVars finds every bare, still-unqualified name in args that
// the resolver deliberately left untouched (resolveConstructorArgAnnot) and
// that is not one of the enclosing type's own parameters.
func unresolvedTypeVars(args []ast.TypeAnnot, typeVars map[string]types.TV) []string {
	var bad []string
	var walk func(a ast.TypeAnnot)
	walk = func(a ast.TypeAnnot) {
		if a.Ptr {
			walk(a.Args[0])
			return
		}
		if a.Name.Kind == ast.Unqualified && !baseTypeNames[a.Name.Text] {
			if _, ok := typeVars[a.Name.Text]; !ok {
				bad = append(bad, a.Name.Text)
			}
		}
		for _, sub := range a.Args {
			walk(sub)
		}
	}
	for _, a := range args {
		walk(a)
	}
	return bad
}

// registerExtern binds an extern's signature directly into the environment:
// externs have no body to walk, so they skip the placeholder step entirely
// and go straight to a finalized scheme.
func (c *InferCtx) registerExtern(modPath []string, d *ast.ExternDecl) {
	paramTypes := make([]types.Type, len(d.ParamTypes))
	for i, p := range d.ParamTypes {
		paramTypes[i] = convertAnnot(p, nil)
	}
	sig := &types.TFunc{Params: paramTypes, Return: convertAnnot(d.RetType, nil)}
	key := ast.NewQualified(modPath, d.Name).Key()
	c.Env = c.Env.Extend(key, types.Binding{Scheme: types.Mono(sig), Mutable: false})
}
