package types

// Constraint is the single kind the spec fixes: an equality obligation
// between two types, tagged with the position that produced it so a failed
// unification can still report where the mismatch came from.
type Constraint struct {
	Pos Pos
	T1  Type
	T2  Type
}

// CEqual constructs an equality constraint.
func CEqual(pos Pos, t1, t2 Type) Constraint {
	return Constraint{Pos: pos, T1: t1, T2: t2}
}

// Solve folds a constraint list through the unifier, composing substitutions
// and applying each new unifier to the remaining constraints before
// recursing. It fails fast: the first unification error is returned and no
// further constraints are examined.
func Solve(constraints []Constraint) (Substitution, error) {
	sub := Substitution{}
	remaining := make([]Constraint, len(constraints))
	copy(remaining, constraints)

	for len(remaining) > 0 {
		c := remaining[0]
		rest := remaining[1:]

		s, err := Unify(c.Pos, Apply(sub, c.T1), Apply(sub, c.T2))
		if err != nil {
			return nil, err
		}
		sub = Compose(s, sub)

		remaining = make([]Constraint, len(rest))
		for i, rc := range rest {
			remaining[i] = Constraint{Pos: rc.Pos, T1: Apply(s, rc.T1), T2: Apply(s, rc.T2)}
		}
	}
	return sub, nil
}
