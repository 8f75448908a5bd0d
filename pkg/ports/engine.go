package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// Catalog is the interface adapters (HTTP, MCP) use to answer questions about named automata.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// List returns the IDs of every available automaton.
	List() ([]string, error)

	// Automaton returns the frozen automaton for id.
	Automaton(ctx context.Context, id string) (*domain.Automaton, error)

	// IsDeterministic checks id and returns the conflicts that make it non-deterministic.
	IsDeterministic(ctx context.Context, id string) (bool, []domain.Conflict, error)

	// Evaluate runs each word through id.
	Evaluate(ctx context.Context, id string, words []string) ([]domain.Trace, error)
}
