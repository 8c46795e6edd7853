// Package ast defines the untyped program tree the upstream parser produces
// and the resolver/inferrer annotate in place: module structure, top-level
// declarations, expressions, patterns and surface type annotations.
package ast

import "strings"

// NameKind distinguishes an unqualified identifier from a canonical,
// module-path-qualified one. Qualified is the only form the resolver ever
// leaves behind (§3, §4.4 invariant).
type NameKind int

const (
	Unqualified NameKind = iota
	Qualified
)

// Name is one of Unqualified(text) or Qualified(path, text).
type Name struct {
	Kind NameKind
	Path []string
	Text string
}

// NewUnqualified builds an Unqualified name as the parser would produce it.
func NewUnqualified(text string) Name {
	return Name{Kind: Unqualified, Text: text}
}

// NewQualified builds a Qualified name from a module path and a text.
func NewQualified(path []string, text string) Name {
	return Name{Kind: Qualified, Path: append([]string{}, path...), Text: text}
}

// String renders "a/b/c.text" for qualified names, "text" for unqualified.
func (n Name) String() string {
	if n.Kind == Unqualified {
		return n.Text
	}
	if len(n.Path) == 0 {
		return n.Text
	}
	return strings.Join(n.Path, "/") + "." + n.Text
}

// Key is the canonical map key for a Qualified name — Go maps can't key on
// a struct containing a slice directly, so the resolver's name_set and
// pub_map key on this string form instead.
func (n Name) Key() string {
	return strings.Join(n.Path, "/") + "#" + n.Text
}

// Equal compares two names by kind, path and text.
func (n Name) Equal(o Name) bool {
	if n.Kind != o.Kind || n.Text != o.Text || len(n.Path) != len(o.Path) {
		return false
	}
	for i := range n.Path {
		if n.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}
