package credstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no value is stored under the requested key
	ErrNotFound = errors.New("credstore: key not found")

	// ErrInvalidKey indicates an empty key was provided
	ErrInvalidKey = errors.New("credstore: key cannot be empty")
)

// Store defines the interface for credential persistence
type Store interface {
	// Get retrieves the value stored under key, or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}
