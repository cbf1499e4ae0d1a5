package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable indicates the request never produced a service response
	// (DNS failure, refused connection, timeout). The caller cannot tell
	// whether the credential is still valid.
	ErrUnreachable = errors.New("identity: service unreachable")

	// ErrMalformedResponse indicates the service answered with a body that
	// does not match the expected envelope.
	ErrMalformedResponse = errors.New("identity: malformed service response")
)

// ServiceError is a structured rejection returned by the identity service.
// The message is safe to surface to the end user.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("identity: service rejected request (%d): %s", e.StatusCode, e.Message)
}

// IsServiceError reports whether err is a structured service rejection and
// returns it for message access.
func IsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
