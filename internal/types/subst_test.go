package types

import "testing"

func TestComposePrefersLeftOnCollision(t *testing.T) {
	a := Substitution{"_x": TInt32}
	b := Substitution{"_x": TBool, "_y": &TVar{Name: "_x"}}
	got := Compose(a, b)
	if !Equal(got["_x"], TInt32) {
		t.Errorf("expected a to shadow b on collision, got %v", got["_x"])
	}
	if !Equal(got["_y"], TInt32) {
		t.Errorf("expected b's range rewritten through a, got %v", got["_y"])
	}
}

func TestComposeIsNotCommutative(t *testing.T) {
	a := Substitution{"_x": TInt32}
	b := Substitution{"_x": TBool}
	ab := Compose(a, b)
	ba := Compose(b, a)
	if Equal(ab["_x"], ba["_x"]) {
		t.Fatalf("compose(a,b) and compose(b,a) coincided; test is not exercising asymmetry")
	}
}

func TestApplyRecursesStructurally(t *testing.T) {
	sub := Substitution{"_a": TInt32, "_b": TBool}
	t1 := &TFunc{
		Params: []Type{&TVar{Name: "_a"}, &TPtr{Inner: &TVar{Name: "_b"}}},
		Return: &TCon{Name: "Pair", Args: []Type{&TVar{Name: "_a"}, &TVar{Name: "_b"}}},
	}
	got := Apply(sub, t1)
	want := "(Int32, &Bool) -> Pair<Int32, Bool>"
	if got.String() != want {
		t.Errorf("Apply mismatch: got %q, want %q", got.String(), want)
	}
}

func TestApplyOnEmptySubstitutionIsNoOp(t *testing.T) {
	t1 := &TVar{Name: "_a"}
	if Apply(Substitution{}, t1) != Type(t1) {
		t.Errorf("expected identity on empty substitution")
	}
}
