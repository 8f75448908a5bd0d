package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/internal/compiler"
	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.DefinitionStore using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	mu          sync.RWMutex
	definitions map[string][]byte
	// built holds automata registered with NewFromAutomata. They are served
	// as they are, so names and labels the text syntax cannot carry survive.
	built  map[string]*domain.Automaton
	parser *compiler.Parser
}

// NewLoader creates a new in-memory loader with the provided raw definitions.
func NewLoader(data map[string]string) *Loader {
	definitions := make(map[string][]byte, len(data))
	for k, v := range data {
		definitions[k] = []byte(v)
	}
	return &Loader{
		definitions: definitions,
		built:       make(map[string]*domain.Automaton),
		parser:      compiler.NewParser(),
	}
}

// NewFromAutomata creates a loader from domain objects, keyed by automaton name.
// The automata are kept frozen and handed to the engine without re-parsing.
func NewFromAutomata(automata ...*domain.Automaton) (*Loader, error) {
	l := NewLoader(nil)
	for _, a := range automata {
		if a.Name == "" {
			return nil, fmt.Errorf("automaton missing name")
		}
		l.built[a.Name] = a.Freeze()
	}
	return l, nil
}

// GetDefinition retrieves the raw definition of an automaton by ID.
// Automata registered with NewFromAutomata are rendered in the text syntax;
// rendering fails with compiler.ErrNotRepresentable when the syntax cannot carry them.
func (l *Loader) GetDefinition(id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if content, ok := l.definitions[id]; ok {
		return append([]byte(nil), content...), nil
	}
	if a, ok := l.built[id]; ok {
		return compiler.Render(a)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, id)
}

// Parse returns the automaton for id, compiling raw definitions on demand.
func (l *Loader) Parse(id string) (*domain.Automaton, error) {
	l.mu.RLock()
	a, ok := l.built[id]
	l.mu.RUnlock()
	if ok {
		return a, nil
	}

	data, err := l.GetDefinition(id)
	if err != nil {
		return nil, err
	}
	return l.parser.Parse(id, data)
}

// ListDefinitions returns all available IDs.
func (l *Loader) ListDefinitions() ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.definitions)+len(l.built))
	for k := range l.definitions {
		keys = append(keys, k)
	}
	for k := range l.built {
		if _, dup := l.definitions[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

// Save stores a copy of data under id.
func (l *Loader) Save(_ context.Context, id string, data []byte) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.definitions[id] = append([]byte(nil), data...)
	delete(l.built, id)
	return nil
}

// Delete removes the definition.
func (l *Loader) Delete(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.definitions, id)
	delete(l.built, id)
	return nil
}
