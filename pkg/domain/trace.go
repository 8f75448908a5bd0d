package domain

// RejectReason explains why a word was not accepted.
type RejectReason string

const (
	// ReasonNone is set on accepted words.
	ReasonNone RejectReason = ""
	// ReasonNoInitial means the automaton has no initial state.
	ReasonNoInitial RejectReason = "no_initial"
	// ReasonNoTransition means no active state could consume the next character.
	ReasonNoTransition RejectReason = "no_transition"
	// ReasonNotFinal means the whole word was read but no active state is final.
	ReasonNotFinal RejectReason = "not_final"
)

// Step is the active state set after consuming one character.
type Step struct {
	Symbol Symbol  `json:"symbol"`
	Active []State `json:"active"`
}

// Trace records a word evaluation.
// Consumed is the number of characters read before the verdict; it is shorter
// than the word when the evaluation stopped on ReasonNoTransition.
type Trace struct {
	Word     string       `json:"word"`
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	Start    []State      `json:"start"`
	Steps    []Step       `json:"steps"`
	Consumed int          `json:"consumed"`
}

// Active returns the state set the evaluation ended in.
func (t Trace) Active() []State {
	if len(t.Steps) == 0 {
		return t.Start
	}
	return t.Steps[len(t.Steps)-1].Active
}

// Conflict describes a non-deterministic choice: one state, one symbol, several transitions.
type Conflict struct {
	State       State        `json:"state"`
	Symbol      Symbol       `json:"symbol"`
	Transitions []Transition `json:"transitions"`
}
