package runtime

import "github.com/aretw0/automata/pkg/domain"

// stateSet is an insertion-ordered set of states.
type stateSet struct {
	order   []domain.State
	members map[domain.State]struct{}
}

func newStateSet() *stateSet {
	return &stateSet{members: make(map[domain.State]struct{})}
}

func (s *stateSet) add(st domain.State) bool {
	if _, ok := s.members[st]; ok {
		return false
	}
	s.members[st] = struct{}{}
	s.order = append(s.order, st)
	return true
}

func (s *stateSet) empty() bool {
	return len(s.order) == 0
}

func (s *stateSet) slice() []domain.State {
	return append([]domain.State(nil), s.order...)
}

// addClosure adds st and everything epsilon-reachable from it.
// Members already in the set are not expanded again: every member was added
// together with its own closure, so the set stays closed under epsilon moves.
func (s *stateSet) addClosure(a *domain.Automaton, st domain.State) {
	if !s.add(st) {
		return
	}
	pending := []domain.State{st}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, next := range a.EpsilonSuccessors(cur) {
			if s.add(next) {
				pending = append(pending, next)
			}
		}
	}
}

// EpsilonClosure returns the given states plus every state reachable from them
// through zero or more epsilon transitions. The result never holds more than
// len(a.States()) entries, whatever the epsilon cycles.
func EpsilonClosure(a *domain.Automaton, states ...domain.State) []domain.State {
	set := newStateSet()
	for _, st := range states {
		set.addClosure(a, st)
	}
	return set.slice()
}
