// Package resolve implements the two-pass name resolver (§4.4): it rewrites
// every identifier and type reference in an untyped ast.Program so that each
// use site is bound to a fully qualified definition, respecting module
// paths, import visibility and local scopes.
package resolve

import (
	"strings"

	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/freshname"
)

// Resolver carries the state threaded across both passes (§3 Resolver state).
type Resolver struct {
	nameSet     map[string]bool      // Qualified.Key() -> present
	pubMap      map[string]bool      // Qualified.Key() -> is public
	curMod      []string             // current module path, including its own name segment
	extraSet    map[string]bool      // duplicate-definition guard, reset per module
	tmpScope    *freshname.Generator // per-module anonymous-scope counter
	importsMap  map[string][]ast.Import
	localScope  []string // reader-style nested scope path
	importCache map[string]map[string]bool
}

// New builds an empty Resolver ready for Resolve.
func New() *Resolver {
	return &Resolver{
		nameSet:     make(map[string]bool),
		pubMap:      make(map[string]bool),
		importsMap:  make(map[string][]ast.Import),
		importCache: make(map[string]map[string]bool),
	}
}

// Resolve runs both passes over prog, rewriting it in place so that every
// identifier is qualified, and returns the first error encountered (nil on
// success).
func Resolve(prog *ast.Program) error {
	r := New()
	if err := r.pass0(prog); err != nil {
		return err
	}
	for i := range prog.Modules {
		if err := r.pass1(&prog.Modules[i]); err != nil {
			return err
		}
	}
	return nil
}

func modPath(m *ast.Module) []string {
	out := append([]string{}, m.Path...)
	return out
}

func modKey(path []string) string {
	return strings.Join(path, "/")
}

func qualifiedKey(path []string, text string) string {
	return ast.NewQualified(path, text).Key()
}

// scopedPath returns curMod ++ localScope, the prefix use-site resolution
// walks outward from (§4.4 step 1).
func (r *Resolver) scopedPath() []string {
	out := make([]string, 0, len(r.curMod)+len(r.localScope))
	out = append(out, r.curMod...)
	out = append(out, r.localScope...)
	return out
}
