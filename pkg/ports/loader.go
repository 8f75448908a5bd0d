package ports

import "context"

// DefinitionLoader defines how automaton definitions are retrieved.
// This allows the storage layer (Loam, FS, Redis, Memory) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition retrieves the raw definition of an automaton by ID.
	// It returns the raw bytes (which the compiler will parse) or an error
	// wrapping domain.ErrDefinitionNotFound.
	GetDefinition(id string) ([]byte, error)

	// ListDefinitions returns the IDs of every available definition.
	// This is used for introspection tools (e.g. 'automata list').
	ListDefinitions() ([]string, error)
}

// Watchable is implemented by loaders that can report definition changes.
type Watchable interface {
	// Watch emits the ID of each definition that changed until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
