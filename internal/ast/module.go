package ast

import (
	"strings"

	"github.com/sunholo/juno/internal/types"
)

// Import is one module's import of another; IsPublic marks a re-exported
// ("pub import") dependency that participates in transitive visibility
// (§4.4 gatherAllPubImports).
type Import struct {
	Pos      types.Pos
	Path     []string
	IsPublic bool
}

func (i Import) String() string {
	kw := "import"
	if i.IsPublic {
		kw = "pub import"
	}
	return kw + " " + strings.Join(i.Path, "/")
}

// Module is one compilation unit: a module path, its imports and its
// top-level declarations.
type Module struct {
	Pos       types.Pos
	Path      []string
	Imports   []Import
	TopLevels []TopLevel
}

func (m Module) Position() types.Pos { return m.Pos }

// Program is the untyped external interface's root: a sequence of Modules
// (§6). Analysis produces a Program of identical shape with every name
// qualified and every expression's type slot filled in.
type Program struct {
	Modules []Module
}
