package domain

import "fmt"

// Automaton is a finite automaton, possibly non-deterministic and with epsilon transitions.
//
// It is built once (by a loader, the dsl package or a test), then frozen.
// After Freeze every method is a pure read, so a frozen Automaton can be shared
// between goroutines without coordination.
type Automaton struct {
	Name string

	states      []State
	known       map[State]struct{}
	initial     State
	hasInitial  bool
	finals      map[State]struct{}
	transitions []Transition
	seen        map[Transition]struct{}
	outgoing    map[State][]Transition
	frozen      bool
}

// NewAutomaton creates an empty, mutable automaton.
func NewAutomaton(name string) *Automaton {
	return &Automaton{
		Name:     name,
		known:    make(map[State]struct{}),
		finals:   make(map[State]struct{}),
		seen:     make(map[Transition]struct{}),
		outgoing: make(map[State][]Transition),
	}
}

// AddState declares a state. Adding a name twice merges the flags of both calls.
// Declaring a second, different initial state fails with ErrMultipleInitial.
func (a *Automaton) AddState(name string, opts ...StateOption) (State, error) {
	if a.frozen {
		return State{}, ErrFrozen
	}
	if name == "" {
		return State{}, ErrEmptyStateName
	}

	var flags stateFlags
	for _, opt := range opts {
		opt(&flags)
	}

	s := State{Name: name}
	if flags.initial && a.hasInitial && a.initial != s {
		return State{}, fmt.Errorf("%w: %q and %q", ErrMultipleInitial, a.initial.Name, name)
	}

	if _, ok := a.known[s]; !ok {
		a.known[s] = struct{}{}
		a.states = append(a.states, s)
	}
	if flags.initial {
		a.initial = s
		a.hasInitial = true
	}
	if flags.final {
		a.finals[s] = struct{}{}
	}
	return s, nil
}

// AddTransition adds an edge between two declared states.
// Both endpoints must exist; adding the same (from, to, symbol) twice is a no-op.
func (a *Automaton) AddTransition(from, to string, sym Symbol) (Transition, error) {
	if a.frozen {
		return Transition{}, ErrFrozen
	}
	src, ok := a.State(from)
	if !ok {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownState, from)
	}
	dst, ok := a.State(to)
	if !ok {
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownState, to)
	}
	if sym == (Symbol{}) {
		return Transition{}, fmt.Errorf("%w: zero symbol", ErrInvalidSymbol)
	}

	t := Transition{From: src, To: dst, Symbol: sym}
	if _, dup := a.seen[t]; dup {
		return t, nil
	}
	a.seen[t] = struct{}{}
	a.transitions = append(a.transitions, t)
	a.outgoing[src] = append(a.outgoing[src], t)
	return t, nil
}

// Freeze ends construction. Subsequent AddState/AddTransition calls fail with ErrFrozen.
func (a *Automaton) Freeze() *Automaton {
	a.frozen = true
	return a
}

// Frozen reports whether construction has ended.
func (a *Automaton) Frozen() bool {
	return a.frozen
}

// Initial returns the initial state, if one was declared.
func (a *Automaton) Initial() (State, bool) {
	return a.initial, a.hasInitial
}

// States returns every state in declaration order.
func (a *Automaton) States() []State {
	return append([]State(nil), a.states...)
}

// FinalStates returns the accepting states in declaration order.
func (a *Automaton) FinalStates() []State {
	finals := make([]State, 0, len(a.finals))
	for _, s := range a.states {
		if _, ok := a.finals[s]; ok {
			finals = append(finals, s)
		}
	}
	return finals
}

// Transitions returns every transition in insertion order.
func (a *Automaton) Transitions() []Transition {
	return append([]Transition(nil), a.transitions...)
}

// State looks a state up by name.
func (a *Automaton) State(name string) (State, bool) {
	s := State{Name: name}
	_, ok := a.known[s]
	return s, ok
}

// HasState reports whether s belongs to the automaton.
func (a *Automaton) HasState(s State) bool {
	_, ok := a.known[s]
	return ok
}

// IsFinal reports whether s is an accepting state.
func (a *Automaton) IsFinal(s State) bool {
	_, ok := a.finals[s]
	return ok
}

// OutgoingTransitions returns the transitions leaving s, in insertion order.
func (a *Automaton) OutgoingTransitions(s State) []Transition {
	return append([]Transition(nil), a.outgoing[s]...)
}

// TransitionFor returns the first transition (in insertion order) leaving s with the given symbol.
func (a *Automaton) TransitionFor(s State, sym Symbol) (Transition, bool) {
	for _, t := range a.outgoing[s] {
		if t.Symbol == sym {
			return t, true
		}
	}
	return Transition{}, false
}

// TransitionsFor returns every transition leaving s with the given symbol.
func (a *Automaton) TransitionsFor(s State, sym Symbol) []Transition {
	var matches []Transition
	for _, t := range a.outgoing[s] {
		if t.Symbol == sym {
			matches = append(matches, t)
		}
	}
	return matches
}

// EpsilonSuccessors returns the states reachable from s through exactly one epsilon transition.
func (a *Automaton) EpsilonSuccessors(s State) []State {
	var next []State
	for _, t := range a.outgoing[s] {
		if t.IsEpsilon() {
			next = append(next, t.To)
		}
	}
	return next
}

// Alphabet returns the distinct non-epsilon symbols used by the transitions, in first-use order.
func (a *Automaton) Alphabet() []Symbol {
	seen := make(map[Symbol]bool)
	var alphabet []Symbol
	for _, t := range a.transitions {
		if t.IsEpsilon() || seen[t.Symbol] {
			continue
		}
		seen[t.Symbol] = true
		alphabet = append(alphabet, t.Symbol)
	}
	return alphabet
}
