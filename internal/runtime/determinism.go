package runtime

import "github.com/aretw0/automata/pkg/domain"

// IsDeterministic reports whether no state has two distinct outgoing transitions
// with the same symbol. Epsilon counts as a symbol like any other.
// Initial and final states play no part in the check.
func IsDeterministic(a *domain.Automaton) bool {
	for _, s := range a.States() {
		seen := make(map[domain.Symbol]bool)
		for _, t := range a.OutgoingTransitions(s) {
			if seen[t.Symbol] {
				return false
			}
			seen[t.Symbol] = true
		}
	}
	return true
}

// Conflicts lists every (state, symbol) pair shared by two or more transitions,
// in state declaration order then symbol first-use order.
func Conflicts(a *domain.Automaton) []domain.Conflict {
	var conflicts []domain.Conflict
	for _, s := range a.States() {
		groups := make(map[domain.Symbol][]domain.Transition)
		var order []domain.Symbol
		for _, t := range a.OutgoingTransitions(s) {
			if _, ok := groups[t.Symbol]; !ok {
				order = append(order, t.Symbol)
			}
			groups[t.Symbol] = append(groups[t.Symbol], t)
		}
		for _, sym := range order {
			if len(groups[sym]) > 1 {
				conflicts = append(conflicts, domain.Conflict{
					State:       s,
					Symbol:      sym,
					Transitions: groups[sym],
				})
			}
		}
	}
	return conflicts
}
