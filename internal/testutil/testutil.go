// Package testutil collects go-cmp based comparison helpers shared by the
// internal/infer and internal/wire tests, adapted from
// the teacher's internal/parser/testutil.go golden/diff style.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sunholo/juno/internal/types"
)

// AssertTypeEqual fails the test with a structural diff if want and got are
// not the same type — cmp.Diff rather than reflect.DeepEqual, since a Type's
// dynamic type and pointer-valued Args/Params make a DeepEqual failure
// unreadable.
func AssertTypeEqual(t *testing.T, want, got types.Type) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("type mismatch (-want +got):\n%s", diff)
	}
}

// AssertSubstitutionEqual diffs two substitutions key-by-key.
func AssertSubstitutionEqual(t *testing.T, want, got types.Substitution) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("substitution mismatch (-want +got):\n%s", diff)
	}
}

// AssertErrorKind fails the test unless err is a *types.AnalysisError of the
// expected kind.
func AssertErrorKind(t *testing.T, err error, want types.Kind) {
	t.Helper()
	got := types.AsKind(err)
	if got != want {
		t.Fatalf("expected error kind %q, got %q (%v)", want, got, err)
	}
}

// RequireNoError fails the test immediately if err is non-nil.
func RequireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
