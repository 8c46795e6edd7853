package types

import (
	"sort"
	"strings"

	"github.com/sunholo/juno/internal/freshname"
)

// Scheme is a (possibly) quantified type. Monomorphic schemes have an empty
// Quantified set — per §9 the current design never generalizes at
// non-top-level bindings, so Mono is the scheme most of the inferrer deals in.
type Scheme struct {
	Quantified map[TV]bool
	Body       Type
}

// Mono wraps a monotype as a scheme with no quantified variables.
func Mono(t Type) *Scheme {
	return &Scheme{Quantified: nil, Body: t}
}

func (s *Scheme) String() string {
	if len(s.Quantified) == 0 {
		return s.Body.String()
	}
	vars := make([]string, 0, len(s.Quantified))
	for v := range s.Quantified {
		vars = append(vars, string(v))
	}
	sort.Strings(vars)
	return "forall " + strings.Join(vars, " ") + ". " + s.Body.String()
}

// Instantiate replaces a scheme's quantified variables with fresh ones drawn
// from gen, and rewrites the body accordingly.
func Instantiate(gen *freshname.Generator, s *Scheme) Type {
	if len(s.Quantified) == 0 {
		return s.Body
	}
	sub := make(Substitution, len(s.Quantified))
	for v := range s.Quantified {
		sub[v] = &TVar{Name: TV(gen.Next())}
	}
	return Apply(sub, s.Body)
}

// TvsScheme returns a scheme's free type variables, skipping quantified ones.
func TvsScheme(s *Scheme) map[TV]bool {
	free := Tvs(s.Body)
	for v := range s.Quantified {
		delete(free, v)
	}
	return free
}

// ApplyScheme applies a substitution to a scheme: quantified variables are
// removed from the substitution first (they are bound, not free), then the
// body is rewritten.
func ApplyScheme(sub Substitution, s *Scheme) *Scheme {
	if len(s.Quantified) == 0 {
		return &Scheme{Body: Apply(sub, s.Body)}
	}
	narrowed := make(Substitution, len(sub))
	for v, t := range sub {
		if !s.Quantified[v] {
			narrowed[v] = t
		}
	}
	return &Scheme{Quantified: s.Quantified, Body: Apply(narrowed, s.Body)}
}

// Generalize closes a type over the variables free in t but not free in env,
// producing a polymorphic scheme. Per §9 DESIGN NOTES this is the gap the
// current design leaves unexercised outside of this helper: inferFn always
// binds with Mono, never Generalize, to preserve the no-generalize-at-
// parameters behavior and avoid the value-restriction pitfall. The function
// is exported as the documented skeleton an implementer would extend.
func Generalize(envFree map[TV]bool, t Type) *Scheme {
	free := Tvs(t)
	quantified := make(map[TV]bool, len(free))
	for v := range free {
		if !envFree[v] {
			quantified[v] = true
		}
	}
	if len(quantified) == 0 {
		return Mono(t)
	}
	return &Scheme{Quantified: quantified, Body: t}
}
