package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	allowed := []struct{ from, to Status }{
		{StatusAnonymous, StatusAuthenticating},
		{StatusAnonymous, StatusAwaitingProvider},
		{StatusAuthenticating, StatusAuthenticated},
		{StatusAuthenticating, StatusAnonymous},
		{StatusAuthenticating, StatusError},
		{StatusAwaitingProvider, StatusAuthenticating},
		{StatusAwaitingProvider, StatusAnonymous},
		{StatusAuthenticated, StatusAuthenticating},
		{StatusAuthenticated, StatusAwaitingProvider},
		{StatusAuthenticated, StatusAnonymous},
		{StatusError, StatusAuthenticating},
		{StatusError, StatusAwaitingProvider},
		{StatusError, StatusAnonymous},
	}
	for _, tc := range allowed {
		assert.True(t, canTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusAnonymous, StatusAuthenticated},
		{StatusAnonymous, StatusError},
		{StatusAuthenticating, StatusAwaitingProvider},
		{StatusAwaitingProvider, StatusAuthenticated},
		{StatusAwaitingProvider, StatusError},
		{StatusAuthenticated, StatusError},
		{StatusError, StatusAuthenticated},
	}
	for _, tc := range denied {
		assert.False(t, canTransition(tc.from, tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestIsBusy(t *testing.T) {
	t.Parallel()

	assert.True(t, isBusy(StatusAuthenticating))
	assert.True(t, isBusy(StatusAwaitingProvider))
	assert.False(t, isBusy(StatusAnonymous))
	assert.False(t, isBusy(StatusAuthenticated))
	assert.False(t, isBusy(StatusError))
}
