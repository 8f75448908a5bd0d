package dsl

import "github.com/aretw0/automata/pkg/domain"

type edge struct {
	to     string
	symbol domain.Symbol
	err    error
}

// StateBuilder provides a fluent API for configuring a state and its outgoing transitions.
type StateBuilder struct {
	name    string
	initial bool
	final   bool
	edges   []edge
	builder *Builder
}

// Initial marks the state as the initial state.
func (s *StateBuilder) Initial() *StateBuilder {
	s.initial = true
	return s
}

// Final marks the state as accepting.
func (s *StateBuilder) Final() *StateBuilder {
	s.final = true
	return s
}

// On adds one transition to target for each label.
// Labels use the same spellings as definition files ("a", "ε", "eps").
func (s *StateBuilder) On(target string, labels ...string) *StateBuilder {
	for _, label := range labels {
		sym, err := domain.ParseSymbol(label)
		s.edges = append(s.edges, edge{to: target, symbol: sym, err: err})
	}
	return s
}

// OnRune adds a transition to target consuming r.
func (s *StateBuilder) OnRune(r rune, target string) *StateBuilder {
	s.edges = append(s.edges, edge{to: target, symbol: domain.Char(r)})
	return s
}

// Epsilon adds an epsilon transition to target.
func (s *StateBuilder) Epsilon(target string) *StateBuilder {
	s.edges = append(s.edges, edge{to: target, symbol: domain.Epsilon})
	return s
}

// State jumps to another state declaration, allowing a single chain.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}
