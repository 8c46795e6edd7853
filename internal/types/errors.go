package types

import (
	"fmt"
	"strings"
)

// Kind is the fixed §7 error taxonomy. Every AnalysisError carries exactly
// one of these; none are recovered locally, all are fatal for the run.
type Kind string

const (
	Redefinition          Kind = "redefinition"
	Undefined             Kind = "undefined"
	Ambiguous             Kind = "ambiguous"
	UndefinedTypeVariable Kind = "undefined_type_variable"
	ImmutableAssign       Kind = "immutable_assign"
	NonLValue             Kind = "non_lvalue"
	NonReferencable       Kind = "non_referencable"
	EmptyMatch            Kind = "empty_match"
	Mismatch              Kind = "mismatch"
	InfiniteType          Kind = "infinite_type"
	NotImplemented        Kind = "not_implemented"
)

// Pos is a source position locator. The core never constructs one itself —
// it is carried through from the syntax info the upstream parser attaches to
// every AST node (§6) — but needs a concrete shape to embed in AnalysisError.
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// AnalysisError is the single structured value errors are surfaced to the
// driver as (§6). Expected/Actual are populated for Mismatch; Name for
// Redefinition/Undefined/Ambiguous/ImmutableAssign/UndefinedTypeVariable.
type AnalysisError struct {
	Kind       Kind
	Pos        Pos
	Message    string
	Name       string
	Expected   Type
	Actual     Type
	Suggestion string
}

func (e *AnalysisError) Error() string {
	var b strings.Builder
	if e.Pos.Line != 0 || e.Pos.File != "" {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Expected != nil && e.Actual != nil {
		fmt.Fprintf(&b, " (expected %s, got %s)", e.Expected, e.Actual)
	}
	if e.Suggestion != "" {
		b.WriteString(" — ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

// NewRedefinition reports a duplicate qualified definition.
func NewRedefinition(pos Pos, name string) *AnalysisError {
	return &AnalysisError{Kind: Redefinition, Pos: pos, Name: name,
		Message: fmt.Sprintf("redefinition of %q", name)}
}

// NewUndefined reports a use site with no resolution.
func NewUndefined(pos Pos, name string) *AnalysisError {
	return &AnalysisError{Kind: Undefined, Pos: pos, Name: name,
		Message:    fmt.Sprintf("undefined name %q", name),
		Suggestion: "check the spelling, or that the defining module is imported"}
}

// NewAmbiguous reports a use site with more than one visible public resolution.
func NewAmbiguous(pos Pos, name string, candidates []string) *AnalysisError {
	return &AnalysisError{Kind: Ambiguous, Pos: pos, Name: name,
		Message: fmt.Sprintf("ambiguous reference to %q: visible from %s", name, strings.Join(candidates, ", "))}
}

// NewUndefinedTypeVariable reports constructor type variables absent from
// their enclosing type's parameter list.
func NewUndefinedTypeVariable(pos Pos, typeName string, vars []string) *AnalysisError {
	return &AnalysisError{Kind: UndefinedTypeVariable, Pos: pos, Name: typeName,
		Message: fmt.Sprintf("type %q references undefined type variable(s) [%s]", typeName, strings.Join(vars, ", "))}
}

// NewImmutableAssign reports assignment to a non-mutable binding.
func NewImmutableAssign(pos Pos, name string) *AnalysisError {
	return &AnalysisError{Kind: ImmutableAssign, Pos: pos, Name: name,
		Message:    fmt.Sprintf("cannot assign to immutable binding %q", name),
		Suggestion: fmt.Sprintf("declare it with 'mut %s := ...'", name)}
}

// NewNonLValue reports an assignment LHS that is neither a variable nor a dereference.
func NewNonLValue(pos Pos) *AnalysisError {
	return &AnalysisError{Kind: NonLValue, Pos: pos,
		Message: "left-hand side of assignment is not a variable or dereference"}
}

// NewNonReferencable reports & applied to a non-variable.
func NewNonReferencable(pos Pos) *AnalysisError {
	return &AnalysisError{Kind: NonReferencable, Pos: pos,
		Message: "'&' can only be applied to a variable"}
}

// NewEmptyMatch reports a zero-arm match expression.
func NewEmptyMatch(pos Pos) *AnalysisError {
	return &AnalysisError{Kind: EmptyMatch, Pos: pos, Message: "match expression has no arms"}
}

// NewMismatch reports a unification failure at a constructor head or arity.
func NewMismatch(pos Pos, expected, actual Type) *AnalysisError {
	return &AnalysisError{Kind: Mismatch, Pos: pos, Expected: expected, Actual: actual,
		Message: "type mismatch"}
}

// NewInfiniteType reports an occurs-check violation.
func NewInfiniteType(pos Pos, v TV, t Type) *AnalysisError {
	return &AnalysisError{Kind: InfiniteType, Pos: pos, Name: string(v), Actual: t,
		Message:    fmt.Sprintf("infinite type: %s occurs in %s", v, t),
		Suggestion: "check for recursive definitions without a base case"}
}

// NewNotImplemented reports a construct the core deliberately rejects (closures).
func NewNotImplemented(pos Pos, what string) *AnalysisError {
	return &AnalysisError{Kind: NotImplemented, Pos: pos,
		Message: fmt.Sprintf("%s is not implemented", what)}
}

// ErrorList aggregates more than one AnalysisError. Used only where the spec
// explicitly allows a full pass before halting — Pass 0 duplicate-definition
// scanning (§4.4) — never by the inferrer, which always fails fast on the
// first error per §7.
type ErrorList []*AnalysisError

func (e ErrorList) Error() string {
	if len(e) == 0 {
		return "no errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	parts := make([]string, 0, len(e)+1)
	parts = append(parts, fmt.Sprintf("%d errors:", len(e)))
	for i, err := range e {
		parts = append(parts, fmt.Sprintf("  [%d] %s", i+1, err.Error()))
	}
	return strings.Join(parts, "\n")
}

// AsKind reports the Kind of err if it is an *AnalysisError, or "" otherwise
// — a convenience for callers that want to branch on error kind without
// repeating the type assertion.
func AsKind(err error) Kind {
	if ae, ok := err.(*AnalysisError); ok {
		return ae.Kind
	}
	return ""
}
