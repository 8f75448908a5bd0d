package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	name   string
	order  []string
	states map[string]*StateBuilder
}

// New creates a new automaton builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[string]*StateBuilder),
	}
}

// State declares a state in the automaton.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		name:    name,
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build compiles the declarations into a frozen automaton.
// States are added before transitions, so a transition may target a state declared later.
func (b *Builder) Build() (*domain.Automaton, error) {
	a := domain.NewAutomaton(b.name)

	var errs []error
	for _, name := range b.order {
		sb := b.states[name]
		var opts []domain.StateOption
		if sb.initial {
			opts = append(opts, domain.AsInitial())
		}
		if sb.final {
			opts = append(opts, domain.AsFinal())
		}
		if _, err := a.AddState(name, opts...); err != nil {
			errs = append(errs, err)
		}
	}

	for _, name := range b.order {
		for _, e := range b.states[name].edges {
			if e.err != nil {
				errs = append(errs, fmt.Errorf("state %q: %w", name, e.err))
				continue
			}
			if _, err := a.AddTransition(name, e.to, e.symbol); err != nil {
				errs = append(errs, fmt.Errorf("state %q: %w", name, err))
			}
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build automaton %q: %w", b.name, errors.Join(errs...))
	}
	return a.Freeze(), nil
}

// MustBuild is like Build but panics on error. Intended for tests and static tables.
func (b *Builder) MustBuild() *domain.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
