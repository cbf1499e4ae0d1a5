package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store backed by a single JSON file. Writes go through
// a temp file and rename so a crash mid-write never corrupts the stored
// credential.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed credential store at path. The parent
// directory is created if missing. The file itself is created lazily on the
// first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("credstore: file path cannot be empty")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("credstore: create storage dir: %w", err)
		}
	}

	return &FileStore{path: path}, nil
}

// Get retrieves a value by key
func (f *FileStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", err
	}

	value, exists := values[key]
	if !exists {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a value under key
func (f *FileStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value
	return f.save(values)
}

// Delete removes a key
func (f *FileStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	if _, exists := values[key]; !exists {
		return nil
	}

	delete(values, key)
	return f.save(values)
}

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("credstore: read storage file: %w", err)
	}

	if len(data) == 0 {
		return make(map[string]string), nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("credstore: parse storage file: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (f *FileStore) save(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("credstore: encode storage file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("credstore: write storage file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("credstore: replace storage file: %w", err)
	}
	return nil
}
