package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// typeString renders a Substitution's values as strings so a whole
// substitution can be compared with go-cmp as a map of printed types, which
// gives a short, readable diff on failure.
func typeString(t Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func substStrings(sub Substitution) map[TV]string {
	out := make(map[TV]string, len(sub))
	for v, t := range sub {
		out[v] = typeString(t)
	}
	return out
}

func TestSolveComposesAcrossConstraints(t *testing.T) {
	a := &TVar{Name: "_a"}
	b := &TVar{Name: "_b"}
	constraints := []Constraint{
		CEqual(Pos{}, a, &TFunc{Params: []Type{b}, Return: TBool}),
		CEqual(Pos{}, b, TInt32),
	}
	sub, err := Solve(constraints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := substStrings(sub)
	want := map[TV]string{
		"_a": "(Int32) -> Bool",
		"_b": "Int32",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("substitution mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveFailsFastOnFirstError(t *testing.T) {
	constraints := []Constraint{
		CEqual(Pos{}, TInt32, TBool), // fails immediately
		CEqual(Pos{}, TStr, TStr),    // would succeed, never reached
	}
	_, err := Solve(constraints)
	ae, ok := err.(*AnalysisError)
	if !ok || ae.Kind != Mismatch {
		t.Fatalf("expected Mismatch, got %v", err)
	}
}

// Property: idempotent substitution — apply(σ, apply(σ, t)) = apply(σ, t).
func TestSolveIdempotentSubstitution(t *testing.T) {
	a, b, c := &TVar{Name: "_a"}, &TVar{Name: "_b"}, &TVar{Name: "_c"}
	constraints := []Constraint{
		CEqual(Pos{}, a, &TPtr{Inner: b}),
		CEqual(Pos{}, b, &TPtr{Inner: c}),
		CEqual(Pos{}, c, TChar),
	}
	sub, err := Solve(constraints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	once := Apply(sub, a)
	twice := Apply(sub, once)
	if !Equal(once, twice) {
		t.Errorf("substitution not idempotent: once=%s twice=%s", once, twice)
	}
}

// Property: occurs-check — for every (v, t) in σ, v ∉ tvs(t).
func TestSolveOutputHasNoOccursViolation(t *testing.T) {
	a, b := &TVar{Name: "_a"}, &TVar{Name: "_b"}
	constraints := []Constraint{
		CEqual(Pos{}, a, &TFunc{Params: []Type{b}, Return: b}),
		CEqual(Pos{}, b, TInt32),
	}
	sub, err := Solve(constraints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for v, tp := range sub {
		if Tvs(tp)[v] {
			t.Errorf("occurs-check violated: %s occurs in its own image %s", v, tp)
		}
	}
}
