package provider_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/clientkit/pkg/provider"
)

func newGoogleProvider(t *testing.T, opts ...provider.GoogleOption) *provider.GoogleProvider {
	t.Helper()

	return provider.NewGoogleProvider(provider.GoogleConfig{
		ClientID:    "test-client-id",
		RedirectURL: "campusconnect://auth/callback",
		Scopes:      []string{"openid", "profile", "email"},
		StateTTL:    10 * time.Minute,
	}, opts...)
}

// beginAndExtractState starts the flow and pulls the state parameter out of
// the consent URL, standing in for the redirect the real flow would carry.
func beginAndExtractState(t *testing.T, p *provider.GoogleProvider) string {
	t.Helper()

	authURL, err := p.Begin(context.Background())
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestGoogleProvider_Begin(t *testing.T) {
	t.Parallel()

	p := newGoogleProvider(t)

	authURL, err := p.Begin(context.Background())
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	assert.Equal(t, "accounts.google.com", parsed.Host)
	query := parsed.Query()
	assert.Equal(t, "test-client-id", query.Get("client_id"))
	assert.Equal(t, "campusconnect://auth/callback", query.Get("redirect_uri"))
	assert.Contains(t, query.Get("scope"), "openid")
	assert.NotEmpty(t, query.Get("state"))
}

func TestGoogleProvider_Begin_UniqueStates(t *testing.T) {
	t.Parallel()

	p := newGoogleProvider(t)

	first := beginAndExtractState(t, p)
	second := beginAndExtractState(t, p)
	assert.NotEqual(t, first, second)
}

func TestGoogleProvider_Callback(t *testing.T) {
	t.Parallel()

	t.Run("valid state with token succeeds", func(t *testing.T) {
		t.Parallel()

		p := newGoogleProvider(t)
		state := beginAndExtractState(t, p)

		result := p.Callback(state, "google-id-token")
		assert.Equal(t, provider.ResultSuccess, result.Kind)
		assert.Equal(t, "google-id-token", result.IdentityToken)
		assert.NoError(t, result.Err)
	})

	t.Run("valid state without token is a cancellation", func(t *testing.T) {
		t.Parallel()

		p := newGoogleProvider(t)
		state := beginAndExtractState(t, p)

		result := p.Callback(state, "")
		assert.Equal(t, provider.ResultCancelled, result.Kind)
		assert.Empty(t, result.IdentityToken)
	})

	t.Run("unknown state rejected", func(t *testing.T) {
		t.Parallel()

		p := newGoogleProvider(t)

		result := p.Callback("forged-state", "google-id-token")
		assert.Equal(t, provider.ResultError, result.Kind)
		assert.ErrorIs(t, result.Err, provider.ErrInvalidState)
	})

	t.Run("state is single use", func(t *testing.T) {
		t.Parallel()

		p := newGoogleProvider(t)
		state := beginAndExtractState(t, p)

		first := p.Callback(state, "google-id-token")
		require.Equal(t, provider.ResultSuccess, first.Kind)

		replay := p.Callback(state, "google-id-token")
		assert.Equal(t, provider.ResultError, replay.Kind)
		assert.ErrorIs(t, replay.Err, provider.ErrInvalidState)
	})

	t.Run("expired state rejected", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		p := newGoogleProvider(t, provider.WithClock(func() time.Time { return now }))
		state := beginAndExtractState(t, p)

		now = now.Add(11 * time.Minute)

		result := p.Callback(state, "google-id-token")
		assert.Equal(t, provider.ResultError, result.Kind)
		assert.ErrorIs(t, result.Err, provider.ErrInvalidState)
	})
}
