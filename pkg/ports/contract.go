package ports

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPostContextSourceContract runs a suite of tests to verify that a
// writable PostContextSource implementation adheres to the interface
// contract. The source must implement ContextWriter so the suite can seed it.
func RunPostContextSourceContract(t *testing.T, source PostContextSource) {
	ctx := context.Background()

	writer, ok := source.(ContextWriter)
	require.True(t, ok, "contract suite requires a source that implements ContextWriter")

	t.Run("Put and Fetch", func(t *testing.T) {
		record := &domain.PostContext{
			ID:     4101,
			Status: domain.StatusPublish,
			Permissions: domain.Permissions{
				Delete: true,
			},
			Nonces: map[string]string{"user.posts.delete_post": "abc123"},
		}
		require.NoError(t, writer.Put(ctx, record))

		loaded, err := source.Fetch(ctx, 4101)
		require.NoError(t, err)
		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, record.Status, loaded.Status)
		assert.True(t, loaded.Permissions.Delete)
		assert.Equal(t, "abc123", loaded.Nonce("user.posts.delete_post"))
	})

	t.Run("Fetch Non-Existent", func(t *testing.T) {
		_, err := source.Fetch(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrContextNotFound)
	})

	t.Run("Fetch Isolates Caller Mutation", func(t *testing.T) {
		record := &domain.PostContext{ID: 4102, Status: domain.StatusPublish}
		require.NoError(t, writer.Put(ctx, record))

		first, err := source.Fetch(ctx, 4102)
		require.NoError(t, err)
		first.Status = "mutated"

		second, err := source.Fetch(ctx, 4102)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPublish, second.Status, "caller mutation must not leak back into the source")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, writer.Put(ctx, &domain.PostContext{ID: 4103}))
		require.NoError(t, writer.Delete(ctx, 4103))

		_, err := source.Fetch(ctx, 4103)
		assert.ErrorIs(t, err, domain.ErrContextNotFound, "Fetch after Delete should return ErrContextNotFound")
	})
}
