package ports

import "context"

// DefinitionStore is a DefinitionLoader that can also publish definitions.
type DefinitionStore interface {
	DefinitionLoader

	// Save stores the raw definition under id, replacing any previous one.
	Save(ctx context.Context, id string, data []byte) error

	// Delete removes the definition. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
}
