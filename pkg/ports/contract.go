package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDefinitionStoreContract runs a suite of tests to verify that a DefinitionStore implementation
// adheres to the defined interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")
	definition := []byte("states\nq0:I:F\ntransitions\nq0->q0[label=a]\n")

	t.Run("Save and Get", func(t *testing.T) {
		err := store.Save(ctx, id, definition)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.GetDefinition(id)
		require.NoError(t, err, "GetDefinition should not return error")
		assert.Equal(t, string(definition), string(loaded))
	})

	t.Run("Save Replaces", func(t *testing.T) {
		replacement := []byte("states\nq0:I\n")
		require.NoError(t, store.Save(ctx, id, replacement))

		loaded, err := store.GetDefinition(id)
		require.NoError(t, err)
		assert.Equal(t, string(replacement), string(loaded))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.GetDefinition("non-existent-" + id)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id1, definition))
		require.NoError(t, store.Save(ctx, id2, definition))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.ListDefinitions()
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, definition))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.GetDefinition(id)
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound, "GetDefinition after Delete should return ErrDefinitionNotFound")

		assert.NoError(t, store.Delete(ctx, id), "deleting twice is not an error")
	})
}
