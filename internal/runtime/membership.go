package runtime

import "github.com/aretw0/automata/pkg/domain"

// Accepts reports whether word belongs to the language of a.
//
// Every matching transition is followed, not only the first one, so the result
// is the same as running the equivalent deterministic automaton.
func Accepts(a *domain.Automaton, word string) bool {
	return simulate(a, word, nil).Accepted
}

// Evaluate is Accepts with the full trace of active state sets.
func Evaluate(a *domain.Automaton, word string) domain.Trace {
	return simulate(a, word, nil)
}

// simulate tracks the set of every state the automaton may be in while reading word.
// Each step costs at most one visit per transition, and the active set is bounded by
// the number of states, so evaluation is linear in the word length.
func simulate(a *domain.Automaton, word string, onStep func(int, domain.Step)) domain.Trace {
	trace := domain.Trace{Word: word}

	initial, ok := a.Initial()
	if !ok {
		trace.Reason = domain.ReasonNoInitial
		return trace
	}

	current := newStateSet()
	current.addClosure(a, initial)
	trace.Start = current.slice()

	for _, r := range word {
		next := newStateSet()
		for _, s := range current.order {
			for _, t := range a.OutgoingTransitions(s) {
				if t.Symbol.Matches(r) {
					next.addClosure(a, t.To)
				}
			}
		}
		if next.empty() {
			trace.Reason = domain.ReasonNoTransition
			return trace
		}

		step := domain.Step{Symbol: domain.Char(r), Active: next.slice()}
		trace.Steps = append(trace.Steps, step)
		if onStep != nil {
			onStep(trace.Consumed, step)
		}
		trace.Consumed++
		current = next
	}

	for _, s := range current.order {
		if a.IsFinal(s) {
			trace.Accepted = true
			return trace
		}
	}
	trace.Reason = domain.ReasonNotFinal
	return trace
}
