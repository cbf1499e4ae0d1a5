package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/campusconnect/clientkit/pkg/credstore"
	"github.com/campusconnect/clientkit/pkg/identity"
	"github.com/campusconnect/clientkit/pkg/provider"
	"github.com/campusconnect/clientkit/pkg/sanitizer"
)

// Credential store keys used by the manager.
const (
	TokenKey = "campusconnect.token"
	UserKey  = "campusconnect.user"
)

const busyMessage = "another sign-in is already in progress"

// IdentityService is the remote identity API the manager talks to.
// *identity.Client satisfies it; tests substitute stubs.
type IdentityService interface {
	Signup(ctx context.Context, name, email, password string) (*identity.Grant, error)
	Login(ctx context.Context, email, password string) (*identity.Grant, error)
	ExchangeIdentityToken(ctx context.Context, identityToken string) (*identity.Grant, error)
	Verify(ctx context.Context, credential string) (*identity.User, error)
	Logout(ctx context.Context, credential string) error
}

// ConsentFlow starts the third-party consent round trip.
// *provider.GoogleProvider satisfies it.
type ConsentFlow interface {
	Begin(ctx context.Context) (string, error)
}

// Manager handles session operations. It is safe for concurrent use.
type Manager struct {
	identity IdentityService
	store    credstore.Store
	consent  ConsentFlow
	logger   *slog.Logger
	tokenKey string
	userKey  string

	mu          sync.Mutex
	sess        Session
	subscribers map[uuid.UUID]func(Session)
}

// New creates a session manager over the identity service and credential
// store. Both are required; misconfiguration fails fast.
func New(identitySvc IdentityService, store credstore.Store, opts ...Option) *Manager {
	if identitySvc == nil {
		panic("session: identity service is required")
	}
	if store == nil {
		panic("session: credential store is required")
	}

	m := &Manager{
		identity:    identitySvc,
		store:       store,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		tokenKey:    TokenKey,
		userKey:     UserKey,
		sess:        Session{Status: StatusAnonymous},
		subscribers: make(map[uuid.UUID]func(Session)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Snapshot returns a copy of the current session.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sess.clone()
}

// Subscribe registers fn to receive every committed session change and
// returns the matching unsubscribe func. Subscribers are invoked outside the
// manager lock, in no particular order.
func (m *Manager) Subscribe(fn func(Session)) (unsubscribe func()) {
	id := uuid.New()

	m.mu.Lock()
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Restore recovers a persisted session at startup. With no stored credential
// the session stays anonymous. A stored credential is verified with the
// identity service: acceptance authenticates the session, rejection clears
// the stored credential. When the service is unreachable the credential is
// kept for a later retry but the session still lands anonymous, since an
// unverifiable credential must not look signed-in.
func (m *Manager) Restore(ctx context.Context) error {
	credential, err := m.store.Get(ctx, m.tokenKey)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.WarnContext(ctx, "credential store read failed", "error", err)
		}
		return nil
	}

	if busyErr := m.beginAuth(); busyErr != nil {
		return ErrBusy
	}

	user, err := m.identity.Verify(ctx, credential)
	if err != nil {
		if errors.Is(err, identity.ErrUnreachable) {
			// Cannot tell a bad credential from a dead network; keep the
			// stored credential so the next restore can retry.
			m.logger.WarnContext(ctx, "restore verification unreachable, keeping stored credential")
			m.resetToAnonymous()
			return nil
		}

		m.logger.InfoContext(ctx, "stored credential rejected, clearing")
		m.clearStore(ctx)
		m.resetToAnonymous()
		return nil
	}

	m.mu.Lock()
	if m.sess.Status != StatusAuthenticating {
		// Preempted (logout during verification); drop the result.
		m.mu.Unlock()
		return nil
	}
	m.sess.Status = StatusAuthenticated
	u := *user
	m.sess.User = &u
	m.sess.Credential = credential
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.persistUser(ctx, user)
	m.notify(subs, snapshot)

	m.logger.InfoContext(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Signup registers a new account and signs it in.
func (m *Manager) Signup(ctx context.Context, name, email, password string) Result {
	name = sanitizer.Trim(name)
	email = sanitizer.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return failureResult(KindValidation, "Name, email and password are required")
	}

	if busyErr := m.beginAuth(); busyErr != nil {
		return Result{OK: false, Message: busyErr.Message, Err: busyErr}
	}

	grant, err := m.identity.Signup(ctx, name, email, password)
	if err != nil {
		m.logger.WarnContext(ctx, "signup failed", "error", err)
		return m.failAuth(ctx, err, "Signup failed")
	}

	m.logger.InfoContext(ctx, "signup succeeded", "user_id", grant.User.ID)
	return m.completeGrant(ctx, grant)
}

// Login authenticates with email and password.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	email = sanitizer.NormalizeEmail(email)
	if email == "" || password == "" {
		return failureResult(KindValidation, "Email and password are required")
	}

	if busyErr := m.beginAuth(); busyErr != nil {
		return Result{OK: false, Message: busyErr.Message, Err: busyErr}
	}

	grant, err := m.identity.Login(ctx, email, password)
	if err != nil {
		m.logger.WarnContext(ctx, "login failed", "error", err)
		return m.failAuth(ctx, err, "Login failed")
	}

	m.logger.InfoContext(ctx, "login succeeded", "user_id", grant.User.ID)
	return m.completeGrant(ctx, grant)
}

// BeginThirdPartyAuth starts the external consent flow and returns the
// consent URL for the collaborator to open. The session enters
// StatusAwaitingProvider until CompleteThirdPartyAuth resolves it, which
// also blocks concurrent password operations for the whole round trip.
func (m *Manager) BeginThirdPartyAuth(ctx context.Context) (string, error) {
	if m.consent == nil {
		return "", ErrNoConsentFlow
	}

	m.mu.Lock()
	if isBusy(m.sess.Status) {
		m.mu.Unlock()
		return "", ErrBusy
	}
	m.sess.Status = StatusAwaitingProvider
	m.sess.User = nil
	m.sess.Credential = ""
	m.sess.LastError = nil
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()
	m.notify(subs, snapshot)

	authURL, err := m.consent.Begin(ctx)
	if err != nil {
		// The consent flow never started; give the slot back.
		m.logger.WarnContext(ctx, "consent flow failed to start", "error", err)
		m.resetToAnonymous()
		return "", err
	}

	return authURL, nil
}

// CompleteThirdPartyAuth resolves a pending consent flow with the provider's
// outcome. A token is exchanged with the identity service under the same
// contract as Login; cancellation and provider failure return the session to
// anonymous without surfacing a session error.
func (m *Manager) CompleteThirdPartyAuth(ctx context.Context, res provider.Result) Result {
	m.mu.Lock()
	if m.sess.Status != StatusAwaitingProvider {
		m.mu.Unlock()
		return failureResult(KindBusy, "no third-party sign-in is pending")
	}

	switch res.Kind {
	case provider.ResultSuccess:
		m.sess.Status = StatusAuthenticating
		m.sess.LastError = nil
		snapshot, subs := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(subs, snapshot)

		grant, err := m.identity.ExchangeIdentityToken(ctx, res.IdentityToken)
		if err != nil {
			m.logger.WarnContext(ctx, "identity token exchange failed", "error", err)
			return m.failAuth(ctx, err, "Google authentication failed")
		}

		m.logger.InfoContext(ctx, "third-party sign-in succeeded", "user_id", grant.User.ID)
		return m.completeGrant(ctx, grant)

	case provider.ResultCancelled:
		m.sess.Status = StatusAnonymous
		snapshot, subs := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(subs, snapshot)

		m.logger.InfoContext(ctx, "third-party sign-in cancelled")
		return Result{OK: false, Message: "Sign-in cancelled"}

	default:
		m.sess.Status = StatusAnonymous
		snapshot, subs := m.snapshotLocked()
		m.mu.Unlock()
		m.notify(subs, snapshot)

		m.logger.WarnContext(ctx, "third-party sign-in failed", "error", res.Err)
		return Result{OK: false, Message: "Google authentication failed"}
	}
}

// Logout signs the user out. The remote call is best effort; the credential
// store and local session are cleared unconditionally, so logout always
// succeeds from the caller's perspective.
func (m *Manager) Logout(ctx context.Context) Result {
	m.mu.Lock()
	credential := m.sess.Credential
	m.mu.Unlock()

	if credential != "" {
		if err := m.identity.Logout(ctx, credential); err != nil {
			m.logger.WarnContext(ctx, "remote logout failed, clearing local state anyway", "error", err)
		}
	}

	m.clearStore(ctx)
	m.resetToAnonymous()

	m.logger.InfoContext(ctx, "logged out")
	return successResult()
}

// RefreshUser re-verifies the credential and replaces the profile with the
// freshly returned one. Used after profile edits elsewhere in the system.
// Unreachability leaves the session untouched; a rejected credential forces
// logout, since keeping a revoked user signed in would be worse.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.Lock()
	if m.sess.Status != StatusAuthenticated {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	credential := m.sess.Credential
	m.mu.Unlock()

	user, err := m.identity.Verify(ctx, credential)
	if err != nil {
		if errors.Is(err, identity.ErrUnreachable) {
			m.logger.WarnContext(ctx, "profile refresh skipped, service unreachable", "error", err)
			return nil
		}

		m.logger.WarnContext(ctx, "credential rejected during refresh, signing out", "error", err)
		m.Logout(ctx)
		return nil
	}

	m.mu.Lock()
	if m.sess.Status != StatusAuthenticated {
		m.mu.Unlock()
		return nil
	}
	u := *user
	m.sess.User = &u
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.persistUser(ctx, user)
	m.notify(subs, snapshot)
	return nil
}

// CachedUser returns the profile snapshot persisted at the last successful
// sign-in, letting the UI render something while Restore verifies the
// credential. Returns credstore.ErrNotFound when nothing is cached.
func (m *Manager) CachedUser(ctx context.Context) (*identity.User, error) {
	raw, err := m.store.Get(ctx, m.userKey)
	if err != nil {
		return nil, err
	}

	var user identity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("session: parse cached user: %w", err)
	}
	return &user, nil
}

// beginAuth claims the single in-flight authentication slot. The busy check
// and the transition happen under one lock acquisition so two back-to-back
// operations cannot both pass the guard.
func (m *Manager) beginAuth() *AuthError {
	m.mu.Lock()
	if isBusy(m.sess.Status) {
		m.mu.Unlock()
		return &AuthError{Kind: KindBusy, Message: busyMessage}
	}
	m.sess.Status = StatusAuthenticating
	m.sess.User = nil
	m.sess.Credential = ""
	m.sess.LastError = nil
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, snapshot)
	return nil
}

// completeGrant persists a successful grant and commits the authenticated
// state. When a logout preempted the in-flight operation the grant is
// discarded and the just-written keys are removed again.
func (m *Manager) completeGrant(ctx context.Context, grant *identity.Grant) Result {
	m.persistGrant(ctx, grant)

	m.mu.Lock()
	if !canTransition(m.sess.Status, StatusAuthenticated) {
		// Preempted (logout during the round trip); drop the grant.
		m.mu.Unlock()
		m.clearStore(ctx)
		m.logger.InfoContext(ctx, "sign-in result discarded, session no longer authenticating")
		return failureResult(KindBusy, "Sign-in was interrupted")
	}
	m.sess.Status = StatusAuthenticated
	user := grant.User
	m.sess.User = &user
	m.sess.Credential = grant.Token
	m.sess.LastError = nil
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, snapshot)
	return successResult()
}

// failAuth maps a failed identity call onto the error state. The credential
// store is left untouched: nothing was written for this attempt.
func (m *Manager) failAuth(ctx context.Context, err error, fallbackMsg string) Result {
	authErr := classify(err, fallbackMsg)

	m.mu.Lock()
	if !canTransition(m.sess.Status, StatusError) {
		m.mu.Unlock()
		m.logger.InfoContext(ctx, "sign-in failure discarded, session no longer authenticating")
		return Result{OK: false, Message: authErr.Message, Err: authErr}
	}
	m.sess.Status = StatusError
	m.sess.User = nil
	m.sess.Credential = ""
	m.sess.LastError = authErr
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, snapshot)
	return Result{OK: false, Message: authErr.Message, Err: authErr}
}

// resetToAnonymous drops identity state regardless of current status. Every
// status has a legal edge to anonymous, so no table check is needed here.
func (m *Manager) resetToAnonymous() {
	m.mu.Lock()
	if m.sess.Status == StatusAnonymous && m.sess.User == nil && m.sess.Credential == "" {
		m.mu.Unlock()
		return
	}
	m.sess.Status = StatusAnonymous
	m.sess.User = nil
	m.sess.Credential = ""
	m.sess.LastError = nil
	snapshot, subs := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(subs, snapshot)
}

func (m *Manager) persistGrant(ctx context.Context, grant *identity.Grant) {
	if err := m.store.Set(ctx, m.tokenKey, grant.Token); err != nil {
		// Local state stays authoritative; the session just won't survive
		// a restart.
		m.logger.WarnContext(ctx, "failed to persist credential", "error", err)
	}
	m.persistUser(ctx, &grant.User)
}

func (m *Manager) persistUser(ctx context.Context, user *identity.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		m.logger.WarnContext(ctx, "failed to encode user snapshot", "error", err)
		return
	}
	if err := m.store.Set(ctx, m.userKey, string(raw)); err != nil {
		m.logger.WarnContext(ctx, "failed to persist user snapshot", "error", err)
	}
}

func (m *Manager) clearStore(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := m.store.Delete(ctx, m.tokenKey); err != nil {
		m.logger.WarnContext(ctx, "failed to clear credential", "error", err)
	}
	if err := m.store.Delete(ctx, m.userKey); err != nil {
		m.logger.WarnContext(ctx, "failed to clear user snapshot", "error", err)
	}
}

// snapshotLocked returns the current session copy and subscriber list.
// Callers must hold m.mu.
func (m *Manager) snapshotLocked() (Session, []func(Session)) {
	subs := make([]func(Session), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	return m.sess.clone(), subs
}

func (m *Manager) notify(subs []func(Session), snapshot Session) {
	for _, fn := range subs {
		fn(snapshot)
	}
}

// classify maps identity client failures onto the session error taxonomy.
func classify(err error, fallbackMsg string) *AuthError {
	if se, ok := identity.IsServiceError(err); ok {
		msg := se.Message
		if msg == "" {
			msg = fallbackMsg
		}
		return &AuthError{Kind: KindService, Message: msg}
	}
	if errors.Is(err, identity.ErrUnreachable) {
		return &AuthError{Kind: KindNetwork, Message: fallbackMsg}
	}
	return &AuthError{Kind: KindService, Message: fallbackMsg}
}
