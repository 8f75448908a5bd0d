package domain

import "fmt"

// Transition is a labeled edge between two states.
// It is a comparable value, equal when From, To and Symbol are equal.
type Transition struct {
	From   State  `json:"from" yaml:"from"`
	To     State  `json:"to" yaml:"to"`
	Symbol Symbol `json:"label" yaml:"label"`
}

// IsEpsilon reports whether the transition can be taken without consuming input.
func (t Transition) IsEpsilon() bool {
	return t.Symbol.IsEpsilon()
}

func (t Transition) String() string {
	return fmt.Sprintf("%s->%s[label=%s]", t.From, t.To, t.Symbol)
}
