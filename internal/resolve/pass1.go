package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/freshname"
	"github.com/sunholo/juno/internal/types"
)

// pass1 walks one module's top-levels, resolving every use site and
// registering every local binding along the way (§4.4 Pass 1).
func (r *Resolver) pass1(m *ast.Module) error {
	r.curMod = modPath(m)
	r.localScope = nil
	r.extraSet = make(map[string]bool)
	r.tmpScope = freshname.NewGenerator()

	for _, tl := range m.TopLevels {
		switch d := tl.(type) {
		case *ast.FuncDecl:
			if err := r.resolveFunc(d.Pos, d.Name, d.Params, d.RetAnnot, d.Body); err != nil {
				return err
			}
		case *ast.OperDecl:
			if err := r.resolveFunc(d.Pos, d.Def.Symbol, d.Params, d.RetAnnot, d.Body); err != nil {
				return err
			}
		case *ast.TypeDecl:
			if err := r.resolveTypeDecl(d); err != nil {
				return err
			}
		case *ast.ExternDecl:
			if err := r.resolveExtern(d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Resolver) resolveFunc(pos types.Pos, name string, params []ast.Param, retAnnot *ast.TypeAnnot, body ast.Expr) error {
	key := qualifiedKey(r.curMod, name)
	if r.extraSet[key] {
		return types.NewRedefinition(pos, name)
	}
	r.extraSet[key] = true

	if retAnnot != nil {
		if err := r.resolveTypeAnnot(retAnnot, nil); err != nil {
			return err
		}
	}

	r.localScope = append(r.localScope, name)
	defer func() { r.localScope = r.localScope[:len(r.localScope)-1] }()

	for i := range params {
		p := &params[i]
		if p.Annot != nil {
			if err := r.resolveTypeAnnot(p.Annot, nil); err != nil {
				return err
			}
		}
		r.nameSet[qualifiedKey(r.scopedPath(), p.Name)] = true
	}

	return r.resolveExpr(body)
}

func (r *Resolver) resolveTypeDecl(d *ast.TypeDecl) error {
	key := qualifiedKey(r.curMod, d.Name)
	if r.extraSet[key] {
		return types.NewRedefinition(d.Pos, d.Name)
	}
	r.extraSet[key] = true

	typeParams := make(map[string]bool, len(d.TypeParams))
	for _, tp := range d.TypeParams {
		typeParams[tp] = true
	}

	for ci := range d.Constructors {
		c := &d.Constructors[ci]
		ckey := qualifiedKey(r.curMod, c.Name)
		if r.extraSet[ckey] {
			return types.NewRedefinition(c.Pos, c.Name)
		}
		r.extraSet[ckey] = true
		for ai := range c.Args {
			if err := r.resolveConstructorArgAnnot(&c.Args[ai], typeParams); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveConstructorArgAnnot resolves a constructor's argument type the way
// Pass 1 normally would — except that a bare name that fails the ordinary
// use-site lookup is left unqualified rather than raising Undefined: inside
// a constructor argument list a bare name may legitimately be one of the
// enclosing type's own parameters, and whether it truly is gets decided
// later, by the inferrer's constructor registration step (scenario S4,
// UndefinedTypeVariable) — not here.
func (r *Resolver) resolveConstructorArgAnnot(annot *ast.TypeAnnot, typeParams map[string]bool) error {
	if annot.Ptr {
		return r.resolveConstructorArgAnnot(&annot.Args[0], typeParams)
	}
	if isBaseType(annot.Name.Text) {
		return nil
	}
	if !typeParams[annot.Name.Text] {
		resolved, err := r.resolveUseSite(annot.Name, annot.Pos)
		switch {
		case err == nil:
			annot.Name = resolved
		case types.AsKind(err) == types.Undefined:
			// left unqualified; the inferrer decides if it's a valid type variable
		default:
			return err
		}
	}
	for i := range annot.Args {
		if err := r.resolveConstructorArgAnnot(&annot.Args[i], typeParams); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveExtern(d *ast.ExternDecl) error {
	key := qualifiedKey(r.curMod, d.Name)
	if r.extraSet[key] {
		return types.NewRedefinition(d.Pos, d.Name)
	}
	r.extraSet[key] = true

	for i := range d.ParamTypes {
		if err := r.resolveTypeAnnot(&d.ParamTypes[i], nil); err != nil {
			return err
		}
	}
	return r.resolveTypeAnnot(&d.RetType, nil)
}

// resolveTypeAnnot rewrites every user type name inside annot to its
// qualified form, in place. typeParams names a type declaration's own
// parameters, which are type variables rather than lookups (nil when not
// inside a TypeDecl).
func (r *Resolver) resolveTypeAnnot(annot *ast.TypeAnnot, typeParams map[string]bool) error {
	if annot.Ptr {
		return r.resolveTypeAnnot(&annot.Args[0], typeParams)
	}
	if !isBaseType(annot.Name.Text) && !typeParams[annot.Name.Text] {
		resolved, err := r.resolveUseSite(annot.Name, annot.Pos)
		if err != nil {
			return err
		}
		annot.Name = resolved
	}
	for i := range annot.Args {
		if err := r.resolveTypeAnnot(&annot.Args[i], typeParams); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveExpr(e ast.Expr) error {
	switch d := e.(type) {
	case *ast.Lit:
		return nil
	case *ast.Ident:
		resolved, err := r.resolveUseSite(d.Name, d.Pos)
		if err != nil {
			return err
		}
		d.Name = resolved
		return nil
	case *ast.Assign:
		if err := r.resolveExpr(d.Lhs); err != nil {
			return err
		}
		return r.resolveExpr(d.Rhs)
	case *ast.Block:
		return r.resolveBlock(d)
	case *ast.If:
		if err := r.resolveExpr(d.Cond); err != nil {
			return err
		}
		if err := r.resolveExpr(d.Then); err != nil {
			return err
		}
		return r.resolveExpr(d.Else)
	case *ast.While:
		if err := r.resolveExpr(d.Cond); err != nil {
			return err
		}
		return r.resolveExpr(d.Body)
	case *ast.Match:
		return r.resolveMatch(d)
	case *ast.BinOp:
		if err := r.resolveExpr(d.Left); err != nil {
			return err
		}
		return r.resolveExpr(d.Right)
	case *ast.UnOp:
		return r.resolveExpr(d.Operand)
	case *ast.Call:
		if err := r.resolveExpr(d.Func); err != nil {
			return err
		}
		for _, a := range d.Args {
			if err := r.resolveExpr(a); err != nil {
				return err
			}
		}
		return nil
	case *ast.Deref:
		return r.resolveExpr(d.Operand)
	case *ast.Ref:
		return r.resolveExpr(d.Operand)
	case *ast.Cast:
		if err := r.resolveExpr(d.Operand); err != nil {
			return err
		}
		return r.resolveTypeAnnot(&d.Target, nil)
	case *ast.SizeOf:
		return r.resolveTypeAnnot(&d.Target, nil)
	case *ast.Closure:
		return r.resolveClosure(d)
	case *ast.Return:
		return r.resolveExpr(d.Value)
	default:
		return fmt.Errorf("resolve: unhandled expression %T", e)
	}
}

func (r *Resolver) resolveBlock(b *ast.Block) error {
	scopeSeg := r.tmpScope.Next()
	r.localScope = append(r.localScope, scopeSeg)
	defer func() { r.localScope = r.localScope[:len(r.localScope)-1] }()

	declaredHere := make(map[string]bool)
	for _, decl := range b.Decls {
		switch dd := decl.(type) {
		case *ast.DVar:
			if err := r.resolveExpr(dd.Value); err != nil {
				return err
			}
			if dd.Annot != nil {
				if err := r.resolveTypeAnnot(dd.Annot, nil); err != nil {
					return err
				}
			}
			if declaredHere[dd.Name] {
				return types.NewRedefinition(dd.Pos, dd.Name)
			}
			declaredHere[dd.Name] = true
			r.nameSet[qualifiedKey(r.scopedPath(), dd.Name)] = true
		case *ast.DExpr:
			if err := r.resolveExpr(dd.Value); err != nil {
				return err
			}
		}
	}
	return r.resolveExpr(b.Result)
}

func (r *Resolver) resolveMatch(m *ast.Match) error {
	if err := r.resolveExpr(m.Scrutinee); err != nil {
		return err
	}
	if len(m.Arms) == 0 {
		return types.NewEmptyMatch(m.Pos)
	}
	for i := range m.Arms {
		arm := &m.Arms[i]
		scopeSeg := r.tmpScope.Next()
		r.localScope = append(r.localScope, scopeSeg)
		err := r.bindPattern(arm.Pattern)
		if err == nil {
			err = r.resolveExpr(arm.Body)
		}
		r.localScope = r.localScope[:len(r.localScope)-1]
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) bindPattern(p ast.Pattern) error {
	switch pp := p.(type) {
	case *ast.PVar:
		r.nameSet[qualifiedKey(r.scopedPath(), pp.Name)] = true
	case *ast.PWild, *ast.PLit:
		// bind nothing
	case *ast.PCon:
		resolved, err := r.resolveUseSite(pp.Con, pp.Pos)
		if err != nil {
			return err
		}
		pp.Con = resolved
		for _, argName := range pp.Args {
			r.nameSet[qualifiedKey(r.scopedPath(), argName)] = true
		}
	}
	return nil
}

func (r *Resolver) resolveClosure(c *ast.Closure) error {
	scopeSeg := r.tmpScope.Next()
	r.localScope = append(r.localScope, scopeSeg)
	defer func() { r.localScope = r.localScope[:len(r.localScope)-1] }()

	for i := range c.Params {
		p := &c.Params[i]
		if p.Annot != nil {
			if err := r.resolveTypeAnnot(p.Annot, nil); err != nil {
				return err
			}
		}
		r.nameSet[qualifiedKey(r.scopedPath(), p.Name)] = true
	}
	return r.resolveExpr(c.Body)
}

// resolveUseSite implements §4.4's three-step use-site resolution. A
// pre-qualified name is merely checked for existence and passed through.
func (r *Resolver) resolveUseSite(name ast.Name, p types.Pos) (ast.Name, error) {
	if name.Kind == ast.Qualified {
		if !r.nameSet[name.Key()] {
			return name, types.NewUndefined(p, name.String())
		}
		return name, nil
	}

	if isBaseType(name.Text) {
		return name, nil
	}

	for i := len(r.localScope); i >= 0; i-- {
		candidate := append(append([]string{}, r.curMod...), r.localScope[:i]...)
		if r.nameSet[qualifiedKey(candidate, name.Text)] {
			return ast.NewQualified(candidate, name.Text), nil
		}
	}

	visible := r.gatherAllPubImports(r.curMod)
	var candidates []string
	for modKeyStr := range visible {
		path := splitModKey(modKeyStr)
		k := qualifiedKey(path, name.Text)
		if r.nameSet[k] && r.pubMap[k] {
			candidates = append(candidates, modKeyStr)
		}
	}
	sort.Strings(candidates)

	switch len(candidates) {
	case 0:
		return name, types.NewUndefined(p, name.Text)
	case 1:
		return ast.NewQualified(splitModKey(candidates[0]), name.Text), nil
	default:
		return name, types.NewAmbiguous(p, name.Text, candidates)
	}
}

func splitModKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, "/")
}
