package clientkit_test

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientkit "github.com/campusconnect/clientkit"
	"github.com/campusconnect/clientkit/pkg/config"
	"github.com/campusconnect/clientkit/pkg/credstore"
	"github.com/campusconnect/clientkit/pkg/session"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("memory driver by default", func(t *testing.T) {
		config.ResetCache()

		manager, err := clientkit.New(ctx)
		require.NoError(t, err)
		require.NotNil(t, manager)
		assert.Equal(t, session.StatusAnonymous, manager.Snapshot().Status)
	})

	t.Run("file driver", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CLIENTKIT_STORAGE_DRIVER", "file")
		t.Setenv("CLIENTKIT_STORAGE_FILE", filepath.Join(t.TempDir(), "creds.json"))

		manager, err := clientkit.New(ctx)
		require.NoError(t, err)
		require.NotNil(t, manager)
	})

	t.Run("sealed file driver", func(t *testing.T) {
		config.ResetCache()

		key, err := credstore.GenerateSealKey()
		require.NoError(t, err)

		t.Setenv("CLIENTKIT_STORAGE_DRIVER", "file")
		t.Setenv("CLIENTKIT_STORAGE_FILE", filepath.Join(t.TempDir(), "creds.json"))
		t.Setenv("CLIENTKIT_STORAGE_SEAL_KEY", base64.StdEncoding.EncodeToString(key))

		manager, err := clientkit.New(ctx)
		require.NoError(t, err)
		require.NotNil(t, manager)
	})

	t.Run("malformed seal key is rejected", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CLIENTKIT_STORAGE_SEAL_KEY", "%%not-base64%%")

		_, err := clientkit.New(ctx)
		assert.Error(t, err)
	})

	t.Run("unknown driver is rejected", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CLIENTKIT_STORAGE_DRIVER", "sqlite")

		_, err := clientkit.New(ctx)
		assert.ErrorIs(t, err, clientkit.ErrUnknownStorageDriver)
	})

	t.Run("google auth requires provider configuration", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("GOOGLE_AUTH_ENABLED", "true")
		t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "client-id")
		t.Setenv("GOOGLE_OAUTH_REDIRECT_URL", "campusconnect://oauth")

		manager, err := clientkit.New(ctx)
		require.NoError(t, err)

		_, err = manager.BeginThirdPartyAuth(ctx)
		require.NoError(t, err)
		assert.Equal(t, session.StatusAwaitingProvider, manager.Snapshot().Status)
	})
}
