package domain

// State is a named vertex of the automaton.
// It is a comparable value: two states with the same name are the same state.
type State struct {
	Name string `json:"name" yaml:"name"`
}

func (s State) String() string {
	return s.Name
}

// StateOption marks a state while it is being added to an Automaton.
type StateOption func(*stateFlags)

type stateFlags struct {
	initial bool
	final   bool
}

// AsInitial marks the state as the initial state.
func AsInitial() StateOption {
	return func(f *stateFlags) {
		f.initial = true
	}
}

// AsFinal marks the state as accepting.
func AsFinal() StateOption {
	return func(f *stateFlags) {
		f.final = true
	}
}

// Names returns the names of the given states, preserving order.
func Names(states []State) []string {
	names := make([]string, len(states))
	for i, s := range states {
		names[i] = s.Name
	}
	return names
}
