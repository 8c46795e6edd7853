package types

import (
	"testing"
)

func TestUnifyEqualTypes(t *testing.T) {
	sub, err := Unify(Pos{}, TInt32, TInt32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sub) != 0 {
		t.Errorf("expected empty substitution, got %v", sub)
	}
}

func TestUnifyBindsVariable(t *testing.T) {
	v := &TVar{Name: "_a"}
	sub, err := Unify(Pos{}, v, TInt32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(sub["_a"], TInt32) {
		t.Errorf("expected _a -> Int32, got %v", sub)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	v := &TVar{Name: "_a"}
	ptr := &TPtr{Inner: v}
	_, err := Unify(Pos{}, v, ptr)
	if err == nil {
		t.Fatal("expected InfiniteType error, got nil")
	}
	ae, ok := err.(*AnalysisError)
	if !ok || ae.Kind != InfiniteType {
		t.Errorf("expected InfiniteType, got %v", err)
	}
}

func TestUnifyConstructorMismatch(t *testing.T) {
	_, err := Unify(Pos{}, TInt32, TBool)
	ae, ok := err.(*AnalysisError)
	if !ok || ae.Kind != Mismatch {
		t.Fatalf("expected Mismatch, got %v", err)
	}
}

func TestUnifyFuncArityMismatch(t *testing.T) {
	f1 := &TFunc{Params: []Type{TInt32}, Return: TBool}
	f2 := &TFunc{Params: []Type{TInt32, TInt32}, Return: TBool}
	_, err := Unify(Pos{}, f1, f2)
	ae, ok := err.(*AnalysisError)
	if !ok || ae.Kind != Mismatch {
		t.Fatalf("expected Mismatch, got %v", err)
	}
}

func TestUnifyFuncUnifiesParamsAndReturn(t *testing.T) {
	a, b := &TVar{Name: "_a"}, &TVar{Name: "_b"}
	f1 := &TFunc{Params: []Type{a}, Return: b}
	f2 := &TFunc{Params: []Type{TInt32}, Return: TBool}
	sub, err := Unify(Pos{}, f1, f2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(Apply(sub, a), TInt32) || !Equal(Apply(sub, b), TBool) {
		t.Errorf("substitution did not bind both variables: %v", sub)
	}
}

func TestUnifyPtrRecurses(t *testing.T) {
	a := &TVar{Name: "_a"}
	sub, err := Unify(Pos{}, &TPtr{Inner: a}, &TPtr{Inner: TInt32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Equal(Apply(sub, a), TInt32) {
		t.Errorf("expected _a -> Int32, got %v", sub)
	}
}

// Property: if unify(a,b) = σ then apply(σ,a) = apply(σ,b).
func TestUnifyCorrectnessProperty(t *testing.T) {
	cases := []struct{ a, b Type }{
		{&TVar{Name: "_x"}, &TFunc{Params: []Type{TInt32}, Return: TBool}},
		{&TFunc{Params: []Type{&TVar{Name: "_p"}}, Return: &TVar{Name: "_r"}},
			&TFunc{Params: []Type{TStr}, Return: TChar}},
		{&TPtr{Inner: &TVar{Name: "_q"}}, &TPtr{Inner: TUnit}},
	}
	for i, c := range cases {
		sub, err := Unify(Pos{}, c.a, c.b)
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if !Equal(Apply(sub, c.a), Apply(sub, c.b)) {
			t.Errorf("case %d: apply(sub,a)=%s != apply(sub,b)=%s", i, Apply(sub, c.a), Apply(sub, c.b))
		}
	}
}
