package session

import "log/slog"

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithLogger sets a custom logger. Credentials are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithConsentFlow wires a third-party identity provider. Without one,
// BeginThirdPartyAuth returns ErrNoConsentFlow.
func WithConsentFlow(flow ConsentFlow) Option {
	return func(m *Manager) {
		m.consent = flow
	}
}

// WithStorageKeys overrides the credential store keys, allowing several
// managers to share one store.
func WithStorageKeys(tokenKey, userKey string) Option {
	return func(m *Manager) {
		if tokenKey != "" {
			m.tokenKey = tokenKey
		}
		if userKey != "" {
			m.userKey = userKey
		}
	}
}
