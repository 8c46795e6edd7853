package types

// Unify attempts to unify t1 and t2, returning a substitution that, applied
// to both, makes them syntactically equal. Rules are tried in the order the
// spec fixes (§4.2): equal types short-circuit, then TVar-bind with
// occurs-check, then structural recursion on TCon/TFunc/TPtr, else Mismatch.
func Unify(pos Pos, t1, t2 Type) (Substitution, error) {
	if Equal(t1, t2) {
		return Substitution{}, nil
	}

	if v, ok := t1.(*TVar); ok {
		return bind(pos, v.Name, t2)
	}
	if v, ok := t2.(*TVar); ok {
		return bind(pos, v.Name, t1)
	}

	switch a := t1.(type) {
	case *TCon:
		b, ok := t2.(*TCon)
		if !ok || a.Name != b.Name {
			return nil, NewMismatch(pos, t1, t2)
		}
		if len(a.Args) != len(b.Args) {
			return nil, NewMismatch(pos, t1, t2)
		}
		return unifyMany(pos, a.Args, b.Args)

	case *TFunc:
		b, ok := t2.(*TFunc)
		if !ok {
			return nil, NewMismatch(pos, t1, t2)
		}
		if len(a.Params) != len(b.Params) {
			return nil, NewMismatch(pos, t1, t2)
		}
		return unifyMany(pos, append(append([]Type{}, a.Return), a.Params...),
			append(append([]Type{}, b.Return), b.Params...))

	case *TPtr:
		b, ok := t2.(*TPtr)
		if !ok {
			return nil, NewMismatch(pos, t1, t2)
		}
		return Unify(pos, a.Inner, b.Inner)

	default:
		return nil, NewMismatch(pos, t1, t2)
	}
}

// bind produces {v -> t}, failing with InfiniteType if v occurs free in t.
func bind(pos Pos, v TV, t Type) (Substitution, error) {
	if Tvs(t)[v] {
		return nil, NewInfiniteType(pos, v, t)
	}
	return Substitution{v: t}, nil
}

// unifyMany is a left-fold: unify the heads, apply the resulting substitution
// to both tails, recurse, compose. Slices must be the same length — callers
// check arity before calling.
func unifyMany(pos Pos, as, bs []Type) (Substitution, error) {
	sub := Substitution{}
	for i := range as {
		s, err := Unify(pos, Apply(sub, as[i]), Apply(sub, bs[i]))
		if err != nil {
			return nil, err
		}
		sub = Compose(s, sub)
	}
	return sub, nil
}
