package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Client talks to the CampusConnect identity service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a custom logger for request/response tracing.
// Credentials are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller becomes
// responsible for the request timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New creates an identity service client.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// envelope is the uniform response wrapper used by every /auth endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// grantPayload is the flattened data object carrying the credential next to
// the profile fields.
type grantPayload struct {
	Token  string `json:"token"`
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

func (p grantPayload) grant() *Grant {
	return &Grant{
		Token: p.Token,
		User: User{
			ID:     p.ID,
			Name:   p.Name,
			Email:  p.Email,
			Avatar: p.Avatar,
		},
	}
}

// Signup registers a new account with name, email and password.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*Grant, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.grantRequest(ctx, "/auth/signup", body, "Signup failed")
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*Grant, error) {
	body := map[string]string{"email": email, "password": password}
	return c.grantRequest(ctx, "/auth/login", body, "Login failed")
}

// ExchangeIdentityToken trades a third-party identity token (a Google
// id_token) for a CampusConnect credential.
func (c *Client) ExchangeIdentityToken(ctx context.Context, identityToken string) (*Grant, error) {
	body := map[string]string{"idToken": identityToken}
	return c.grantRequest(ctx, "/auth/google", body, "Google authentication failed")
}

// Verify checks a stored credential and returns the current profile.
func (c *Client) Verify(ctx context.Context, credential string) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/verify", nil, credential, "Token verification failed")
	if err != nil {
		return nil, err
	}

	var payload grantPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}

	user := payload.grant().User
	return &user, nil
}

// Logout invalidates the credential server-side. Callers treat failures as
// best-effort: local state is authoritative.
func (c *Client) Logout(ctx context.Context, credential string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, credential, "Logout failed")
	return err
}

func (c *Client) grantRequest(ctx context.Context, path string, body any, fallbackMsg string) (*Grant, error) {
	env, err := c.do(ctx, http.MethodPost, path, body, "", fallbackMsg)
	if err != nil {
		return nil, err
	}

	var payload grantPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, errors.Join(ErrMalformedResponse, err)
	}
	if payload.Token == "" {
		return nil, errors.Join(ErrMalformedResponse, errors.New("missing token in response"))
	}

	return payload.grant(), nil
}

// do executes a request and decodes the shared envelope. Transport failures
// map to ErrUnreachable; structured rejections map to *ServiceError with the
// service's message or the endpoint fallback.
func (c *Client) do(ctx context.Context, method, path string, body any, credential, fallbackMsg string) (*envelope, error) {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return nil, fmt.Errorf("identity: encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	c.logger.DebugContext(ctx, "identity request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "identity request failed", "method", method, "path", path, "error", err)
		return nil, errors.Join(ErrUnreachable, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "identity response", "method", method, "path", path, "status", resp.StatusCode)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			// Non-JSON error body (proxy page, empty reply): keep the
			// endpoint fallback so the user sees something actionable.
			return nil, &ServiceError{StatusCode: resp.StatusCode, Message: fallbackMsg}
		}
		return nil, errors.Join(ErrMalformedResponse, err)
	}

	if !env.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = fallbackMsg
		}
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}
