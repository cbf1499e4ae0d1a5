package session

import "errors"

var (
	// ErrNoConsentFlow indicates no third-party provider is configured
	ErrNoConsentFlow = errors.New("session: no consent flow configured")

	// ErrNotAuthenticated indicates the operation requires a signed-in user
	ErrNotAuthenticated = errors.New("session: not authenticated")

	// ErrBusy indicates another authentication operation is in flight
	ErrBusy = errors.New("session: another authentication operation is in flight")
)
