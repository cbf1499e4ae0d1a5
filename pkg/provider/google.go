package provider

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const ProviderGoogle = "google"

var (
	ErrInvalidState    = errors.New("provider: invalid or expired state")
	ErrStateGeneration = errors.New("provider: state generation failed")
)

// GoogleConfig holds the configuration for the Google consent flow.
type GoogleConfig struct {
	ClientID    string        `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	RedirectURL string        `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes      []string      `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,profile,email"`
	StateTTL    time.Duration `env:"GOOGLE_OAUTH_STATE_TTL" envDefault:"10m"`
}

// GoogleProvider drives the Google consent flow. It only produces the
// consent URL and validates redirect states; the identity-token exchange
// against the CampusConnect backend stays with the session manager.
type GoogleProvider struct {
	oauth2Config *oauth2.Config
	stateTTL     time.Duration
	logger       *slog.Logger
	now          func() time.Time

	mu     sync.Mutex
	states map[string]time.Time
}

// GoogleOption configures the provider.
type GoogleOption func(*GoogleProvider)

// WithLogger sets a custom logger for the provider.
func WithLogger(logger *slog.Logger) GoogleOption {
	return func(p *GoogleProvider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) GoogleOption {
	return func(p *GoogleProvider) {
		if now != nil {
			p.now = now
		}
	}
}

// NewGoogleProvider creates a Google consent-flow provider.
func NewGoogleProvider(cfg GoogleConfig, opts ...GoogleOption) *GoogleProvider {
	p := &GoogleProvider{
		oauth2Config: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURL,
			Scopes:      cfg.Scopes,
			Endpoint:    google.Endpoint,
		},
		stateTTL: cfg.StateTTL,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		states:   make(map[string]time.Time),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Begin generates a consent URL with CSRF protection via the state
// parameter. The state is remembered for one Callback within StateTTL.
func (p *GoogleProvider) Begin(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	p.mu.Lock()
	p.pruneExpiredLocked()
	p.states[state] = p.now().Add(p.stateTTL)
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "consent flow started", "provider", ProviderGoogle)

	return p.oauth2Config.AuthCodeURL(state), nil
}

// Callback resolves the redirect carrying the provider outcome. The state is
// consumed on first use; an unknown, expired, or replayed state yields a
// failure result. An empty identity token with a valid state is treated as a
// user cancellation (the consent screen was dismissed).
func (p *GoogleProvider) Callback(state, identityToken string) Result {
	if err := p.consumeState(state); err != nil {
		p.logger.Debug("consent callback rejected", "provider", ProviderGoogle, "error", err)
		return Failure(err)
	}

	if identityToken == "" {
		p.logger.Debug("consent flow cancelled", "provider", ProviderGoogle)
		return Cancelled()
	}

	return Success(identityToken)
}

// consumeState removes state from the registry, failing when it is unknown
// or past its TTL. One-time use prevents replay.
func (p *GoogleProvider) consumeState(state string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	expiresAt, ok := p.states[state]
	if !ok {
		return ErrInvalidState
	}
	delete(p.states, state)

	if p.now().After(expiresAt) {
		return ErrInvalidState
	}
	return nil
}

func (p *GoogleProvider) pruneExpiredLocked() {
	now := p.now()
	for state, expiresAt := range p.states {
		if now.After(expiresAt) {
			delete(p.states, state)
		}
	}
}

// generateState creates a cryptographically secure state token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrStateGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
