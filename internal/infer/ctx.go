// Package infer implements Hindley-Milner type inference with constraints
// (§4.5): it walks a resolved ast.Program, generates equality constraints
// over internal/types' type algebra, solves them, and applies the result
// back onto the tree.
package infer

import (
	"github.com/sunholo/juno/internal/ast"
	"github.com/sunholo/juno/internal/freshname"
	"github.com/sunholo/juno/internal/types"
)

// InferCtx is the inferrer's threaded state (§3 Inferrer state). It is
// passed by pointer everywhere rather than carried on an implicit
// reader/writer/state stack, per §9's "explicit InferCtx struct" guidance.
type InferCtx struct {
	Env         *types.AEnv
	Fresh       *freshname.Generator
	Constraints []types.Constraint
	TopLvlTmps  map[string]types.Type
	MainExists  bool

	// Operators maps an operator symbol to the qualified key under which its
	// OperDecl was registered. Unlike ordinary identifiers, operator lookup
	// is not subject to import visibility — the spec only asks for "operator
	// overloading lookup", not a second resolution pass — so this is a flat,
	// whole-program symbol table populated during the pre-pass.
	Operators map[string]string

	// curModPath, curLocalScope and curTmpScope mirror the resolver's own
	// cur_mod/local_scope/tmp_scope_count exactly (§3 Resolver state): a
	// pattern or block-local variable is bound here under the identical
	// qualified key the resolver already baked into every Ident referencing
	// it, which requires replaying the same scope-path arithmetic in the
	// same traversal order.
	curModPath    []string
	curLocalScope []string
	curTmpScope   *freshname.Generator
}

// NewCtx returns an InferCtx with an empty top-level environment.
func NewCtx() *InferCtx {
	return &InferCtx{
		Env:        types.NewEnv(),
		Fresh:      freshname.NewGenerator(),
		TopLvlTmps: make(map[string]types.Type),
		Operators:  make(map[string]string),
	}
}

func (c *InferCtx) freshVar() *types.TVar {
	return &types.TVar{Name: types.TV(c.Fresh.Next())}
}

func (c *InferCtx) emit(pos types.Pos, t1, t2 types.Type) {
	c.Constraints = append(c.Constraints, types.CEqual(pos, t1, t2))
}

// scopedKey builds the qualified key for a locally-bound name at the
// current scope depth, matching ast.Name.Key() for the identical
// Qualified(curModPath++curLocalScope, name) the resolver would have
// produced for a use site at this exact point in the traversal.
func (c *InferCtx) scopedKey(name string) string {
	path := make([]string, 0, len(c.curModPath)+len(c.curLocalScope))
	path = append(path, c.curModPath...)
	path = append(path, c.curLocalScope...)
	return ast.NewQualified(path, name).Key()
}

// lookupName resolves a qualified key against the finalized environment
// first, then against the top-level placeholder map — the latter is how a
// reference to a not-yet-finalized mutually recursive sibling type-checks at
// all (§4.6 state machine: absent -> placeholder -> finalized scheme).
func (c *InferCtx) lookupName(key string) (types.Type, bool) {
	if b, ok := c.Env.Lookup(key); ok {
		return types.Instantiate(c.Fresh, b.Scheme), true
	}
	if t, ok := c.TopLvlTmps[key]; ok {
		return t, true
	}
	return nil, false
}

// lookupBinding is lookupName's counterpart for call sites that need the
// mutability flag too (assignment's ImmutableAssign check).
func (c *InferCtx) lookupBinding(key string) (types.Binding, bool) {
	return c.Env.Lookup(key)
}
