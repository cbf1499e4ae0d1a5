package credstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/clientkit/pkg/credstore"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		_, err := store.Get(ctx, "token")
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "t1"))

		value, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "t1", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "t1"))
		require.NoError(t, store.Set(ctx, "token", "t2"))

		value, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "t2", value)
	})

	t.Run("delete removes key", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "t1"))
		require.NoError(t, store.Delete(ctx, "token"))

		_, err := store.Get(ctx, "token")
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("delete absent key is not an error", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		assert.NoError(t, store.Delete(ctx, "token"))
	})

	t.Run("empty key rejected", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		assert.ErrorIs(t, store.Set(ctx, "", "v"), credstore.ErrInvalidKey)
		_, err := store.Get(ctx, "")
		assert.ErrorIs(t, err, credstore.ErrInvalidKey)
		assert.ErrorIs(t, store.Delete(ctx, ""), credstore.ErrInvalidKey)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := credstore.NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := fmt.Sprintf("key-%d", i%5)
				_ = store.Set(ctx, key, "v")
				_, _ = store.Get(ctx, key)
				_ = store.Delete(ctx, key)
			}()
		}
		wg.Wait()
	})
}
