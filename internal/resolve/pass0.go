package resolve

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/types"
)

// pass0 performs global seeding (§4.4 Pass 0): name_set is pre-populated
// with every top-level function, operator, type definition and constructor
// across every module before any traversal happens, which is what makes
// mutual recursion and forward references — within and across modules —
// resolvable at all.
//
// Seeding is also where every duplicate top-level name is visible in a
// single sweep, so unlike the rest of resolution this pass runs to
// completion and reports all Redefinitions at once. Pass 1 never starts if
// any were found.
func (r *Resolver) pass0(prog *ast.Program) error {
	var dups types.ErrorList
	for i := range prog.Modules {
		m := &prog.Modules[i]
		path := modPath(m)
		r.importsMap[modKey(path)] = m.Imports

		for _, tl := range m.TopLevels {
			switch d := tl.(type) {
			case *ast.FuncDecl:
				dups = r.seed(dups, d.Pos, path, d.Name, d.IsPub)
			case *ast.OperDecl:
				dups = r.seed(dups, d.Pos, path, d.Def.Symbol, d.IsPub)
			case *ast.TypeDecl:
				dups = r.seed(dups, d.Pos, path, d.Name, d.IsPub)
				for _, c := range d.Constructors {
					// constructors inherit their type's public/private status
					dups = r.seed(dups, c.Pos, path, c.Name, d.IsPub)
				}
			case *ast.ExternDecl:
				dups = r.seed(dups, d.Pos, path, d.Name, true)
			}
		}
	}
	switch len(dups) {
	case 0:
		return nil
	case 1:
		return dups[0]
	default:
		return dups
	}
}

func (r *Resolver) seed(dups types.ErrorList, pos types.Pos, path []string, text string, isPub bool) types.ErrorList {
	key := qualifiedKey(path, text)
	if r.nameSet[key] {
		return append(dups, types.NewRedefinition(pos, text))
	}
	r.nameSet[key] = true
	r.pubMap[key] = isPub
	return dups
}
