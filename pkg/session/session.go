package session

import (
	"github.com/campusconnect/clientkit/pkg/identity"
)

// Status is the authentication state of the running client.
type Status string

const (
	// StatusAnonymous means no user is signed in.
	StatusAnonymous Status = "anonymous"
	// StatusAuthenticating means an authentication call is in flight.
	StatusAuthenticating Status = "authenticating"
	// StatusAwaitingProvider means a third-party consent round trip is
	// pending out of process.
	StatusAwaitingProvider Status = "awaiting_provider"
	// StatusAuthenticated means a user is signed in and holds a credential.
	StatusAuthenticated Status = "authenticated"
	// StatusError means the last authentication attempt failed.
	StatusError Status = "error"
)

// ErrorKind classifies authentication failures for UI collaborators.
type ErrorKind string

const (
	// KindValidation: malformed or missing input caught before any network call.
	KindValidation ErrorKind = "validation"
	// KindService: the identity service returned a structured rejection.
	KindService ErrorKind = "service"
	// KindNetwork: the request never completed.
	KindNetwork ErrorKind = "network"
	// KindBusy: another authentication operation is already in flight.
	KindBusy ErrorKind = "busy"
)

// AuthError is a user-presentable authentication failure.
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Session is a snapshot of the client's authentication state. User and
// Credential are either both set (authenticated) or both empty.
type Session struct {
	Status Status

	// User is the signed-in profile, present only when Status is
	// StatusAuthenticated.
	User *identity.User

	// Credential is the opaque bearer token proving authentication to the
	// identity service. Never logged or displayed.
	Credential string

	// LastError is the failure from the most recent attempt, present only
	// when Status is StatusError.
	LastError *AuthError
}

// IsAuthenticated reports whether a user is signed in.
func (s Session) IsAuthenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// clone returns a snapshot safe to hand outside the manager lock.
func (s Session) clone() Session {
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	if s.LastError != nil {
		lastErr := *s.LastError
		s.LastError = &lastErr
	}
	return s
}

// Result is the explicit outcome of an authentication operation. Failures
// never escape as panics or raw errors across the component boundary.
type Result struct {
	OK      bool
	Message string
	Err     *AuthError
}

func successResult() Result {
	return Result{OK: true}
}

func failureResult(kind ErrorKind, message string) Result {
	return Result{
		OK:      false,
		Message: message,
		Err:     &AuthError{Kind: kind, Message: message},
	}
}
