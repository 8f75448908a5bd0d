package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// Kind classifies an Issue.
type Kind string

const (
	KindMissingInitial Kind = "missing_initial"
	KindNoFinal        Kind = "no_final"
	KindUnreachable    Kind = "unreachable"
	KindDead           Kind = "dead"
	KindInvalid        Kind = "invalid"
)

// Issue is a single finding. State is empty for automaton-wide findings.
type Issue struct {
	Kind    Kind   `json:"kind"`
	State   string `json:"state,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Message
}

// Report collects the findings for one automaton.
// None of them prevents evaluation: an automaton with issues still answers membership queries.
type Report struct {
	Automaton string  `json:"automaton"`
	Issues    []Issue `json:"issues"`
}

// OK reports whether nothing was found.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

// Err summarises the issues as an error, or returns nil.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	lines := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		lines[i] = issue.Message
	}
	return fmt.Errorf("%s: found %d issues:\n- %s", r.Automaton, len(r.Issues), strings.Join(lines, "\n- "))
}

// Validate checks the structure of a: the initial state exists, some state is final,
// every state is reachable from the initial state and every reachable state can still reach a final state.
func Validate(a *domain.Automaton) Report {
	report := Report{Automaton: a.Name}

	if len(a.FinalStates()) == 0 {
		report.add(KindNoFinal, "", "no final state: the language is empty")
	}

	initial, ok := a.Initial()
	if !ok {
		report.add(KindMissingInitial, "", "no initial state: every word is rejected")
		return report
	}

	reachable := forward(a, initial)
	for _, s := range a.States() {
		if !reachable[s] {
			report.add(KindUnreachable, s.Name, fmt.Sprintf("state '%s' is unreachable from '%s'", s.Name, initial.Name))
		}
	}

	live := backward(a)
	for _, s := range a.States() {
		if reachable[s] && !live[s] {
			report.add(KindDead, s.Name, fmt.Sprintf("state '%s' cannot reach a final state", s.Name))
		}
	}

	return report
}

func (r *Report) add(kind Kind, state, message string) {
	r.Issues = append(r.Issues, Issue{Kind: kind, State: state, Message: message})
}

// forward returns the states reachable from start over any transition, epsilon included.
func forward(a *domain.Automaton, start domain.State) map[domain.State]bool {
	visited := map[domain.State]bool{start: true}
	queue := []domain.State{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, t := range a.OutgoingTransitions(current) {
			if !visited[t.To] {
				visited[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}
	return visited
}

// backward returns the states from which some final state is reachable.
func backward(a *domain.Automaton) map[domain.State]bool {
	incoming := make(map[domain.State][]domain.State)
	for _, t := range a.Transitions() {
		incoming[t.To] = append(incoming[t.To], t.From)
	}

	visited := make(map[domain.State]bool)
	queue := a.FinalStates()
	for _, s := range queue {
		visited[s] = true
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, from := range incoming[current] {
			if !visited[from] {
				visited[from] = true
				queue = append(queue, from)
			}
		}
	}
	return visited
}

// Invalid reports a definition that could not be loaded at all.
func Invalid(id string, err error) Report {
	return Report{
		Automaton: id,
		Issues:    []Issue{{Kind: KindInvalid, Message: err.Error()}},
	}
}
