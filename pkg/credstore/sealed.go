package credstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrInvalidSealKey = errors.New("credstore: seal key must be 32 bytes")
	ErrSealFailed     = errors.New("credstore: failed to seal value")
	ErrUnsealFailed   = errors.New("credstore: failed to unseal value")
)

// SealKeySize is the required device key length, 256 bits for AES-256.
const SealKeySize = 32

// sealInfo provides domain separation for the HKDF derivation so the same
// device key can be reused for other purposes without key overlap.
const sealInfo = "campusconnect-credstore-v1"

// SealedStore decorates another Store with AES-256-GCM encryption at rest.
// Values are sealed with a key derived from the device key via HKDF-SHA-256
// and stored base64-encoded, so any backend that holds strings can hold
// sealed credentials. Keys are not encrypted, only values.
type SealedStore struct {
	inner Store
	aead  cipher.AEAD
}

// NewSealedStore wraps inner with encryption under deviceKey. The device key
// must be exactly SealKeySize bytes; GenerateSealKey produces a suitable one.
func NewSealedStore(inner Store, deviceKey []byte) (*SealedStore, error) {
	if inner == nil {
		panic("credstore: inner store is required")
	}
	if len(deviceKey) != SealKeySize {
		return nil, ErrInvalidSealKey
	}

	derived := make([]byte, SealKeySize)
	kdf := hkdf.New(sha256.New, deviceKey, nil, []byte(sealInfo))
	if _, err := io.ReadFull(kdf, derived); err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}
	defer clearBytes(derived)

	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	return &SealedStore{inner: inner, aead: aead}, nil
}

// GenerateSealKey creates a new random device key. Callers persist it in the
// platform keystore; losing it makes previously sealed values unreadable.
func GenerateSealKey() ([]byte, error) {
	key := make([]byte, SealKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrUnsealFailed, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrUnsealFailed
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", errors.Join(ErrUnsealFailed, err)
	}

	return string(plaintext), nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return errors.Join(ErrSealFailed, err)
	}

	// Nonce is prepended so the stored value is self-contained.
	sealed := s.aead.Seal(nonce, nonce, []byte(value), nil)
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (s *SealedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// clearBytes zeros key material once it is no longer needed.
func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
