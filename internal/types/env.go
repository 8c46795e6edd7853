package types

// Binding pairs a type scheme with its mutability flag. Per §3, assigning to
// a name requires the binding in force for that name to have Mutable = true.
type Binding struct {
	Scheme  *Scheme
	Mutable bool
}

// AEnv is the lexical, LIFO environment mapping names to bindings. It is
// implemented as a persistent linked list of frames (teacher's
// types.TypeEnv shape, internal/types/env.go in ailang) so that Extend never
// mutates an outer scope — scoped restoration is then just "use the old
// pointer again", which is what Scoped below relies on.
type AEnv struct {
	bindings map[string]Binding
	parent   *AEnv
}

// NewEnv returns an empty, parentless environment.
func NewEnv() *AEnv {
	return &AEnv{bindings: make(map[string]Binding)}
}

// Extend returns a new environment with name bound to binding, layered on
// top of env. env itself is untouched.
func (env *AEnv) Extend(name string, binding Binding) *AEnv {
	return &AEnv{
		bindings: map[string]Binding{name: binding},
		parent:   env,
	}
}

// Lookup walks the frame chain from innermost to outermost.
func (env *AEnv) Lookup(name string) (Binding, bool) {
	for e := env; e != nil; e = e.parent {
		if b, ok := e.bindings[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// FreeVars returns the free type variables of every binding reachable from
// env, used by Generalize to decide what a let-binding may quantify over.
func (env *AEnv) FreeVars() map[TV]bool {
	free := make(map[TV]bool)
	for e := env; e != nil; e = e.parent {
		for _, b := range e.bindings {
			for v := range TvsScheme(b.Scheme) {
				free[v] = true
			}
		}
	}
	return free
}

// Scoped runs action with env temporarily replaced by extend(env), restoring
// the original environment on every exit path — including a panic or an
// error return from action — via defer, per the stack-discipline requirement
// of §5 (no suspension points, no shared state, restoration on every exit).
// envPtr is the field inside the caller's inferrer/resolver state that holds
// the live environment.
func Scoped(envPtr **AEnv, extend func(*AEnv) *AEnv, action func() error) error {
	saved := *envPtr
	*envPtr = extend(saved)
	defer func() { *envPtr = saved }()
	return action()
}
