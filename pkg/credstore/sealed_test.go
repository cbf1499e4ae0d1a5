package credstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/clientkit/pkg/credstore"
)

func TestSealedStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newSealed := func(t *testing.T) (*credstore.SealedStore, *credstore.MemoryStore, []byte) {
		t.Helper()

		key, err := credstore.GenerateSealKey()
		require.NoError(t, err)

		inner := credstore.NewMemoryStore()
		store, err := credstore.NewSealedStore(inner, key)
		require.NoError(t, err)
		return store, inner, key
	}

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store, _, _ := newSealed(t)

		require.NoError(t, store.Set(ctx, "token", "t1"))

		value, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "t1", value)
	})

	t.Run("backend never sees plaintext", func(t *testing.T) {
		t.Parallel()

		store, inner, _ := newSealed(t)

		require.NoError(t, store.Set(ctx, "token", "t1"))

		raw, err := inner.Get(ctx, "token")
		require.NoError(t, err)
		assert.NotEqual(t, "t1", raw)
		assert.NotContains(t, raw, "t1")
	})

	t.Run("wrong key fails to unseal", func(t *testing.T) {
		t.Parallel()

		store, inner, _ := newSealed(t)
		require.NoError(t, store.Set(ctx, "token", "t1"))

		otherKey, err := credstore.GenerateSealKey()
		require.NoError(t, err)
		other, err := credstore.NewSealedStore(inner, otherKey)
		require.NoError(t, err)

		_, err = other.Get(ctx, "token")
		assert.ErrorIs(t, err, credstore.ErrUnsealFailed)
	})

	t.Run("tampered value fails to unseal", func(t *testing.T) {
		t.Parallel()

		store, inner, _ := newSealed(t)
		require.NoError(t, store.Set(ctx, "token", "t1"))

		require.NoError(t, inner.Set(ctx, "token", "bm90LWEtc2VhbGVkLXZhbHVl"))

		_, err := store.Get(ctx, "token")
		assert.ErrorIs(t, err, credstore.ErrUnsealFailed)
	})

	t.Run("missing key passes through", func(t *testing.T) {
		t.Parallel()

		store, _, _ := newSealed(t)

		_, err := store.Get(ctx, "absent")
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("delete removes the sealed value", func(t *testing.T) {
		t.Parallel()

		store, inner, _ := newSealed(t)
		require.NoError(t, store.Set(ctx, "token", "t1"))
		require.NoError(t, store.Delete(ctx, "token"))

		_, err := inner.Get(ctx, "token")
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})

	t.Run("rejects short keys", func(t *testing.T) {
		t.Parallel()

		_, err := credstore.NewSealedStore(credstore.NewMemoryStore(), []byte("short"))
		assert.ErrorIs(t, err, credstore.ErrInvalidSealKey)
	})
}
