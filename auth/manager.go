package auth

import (
	"context"
	"encoding/json"

	"github.com/bookbazaar/storefront-api/backend"
	"github.com/bookbazaar/storefront-api/models"
	"github.com/bookbazaar/storefront-api/storage"
)

// State is the hydrated auth picture for one session. Until Ready is
// true (session storage could not be read), dependent components must
// treat the auth state as unknown and defer, notably cart refreshes.
type State struct {
	User  *models.User
	Token string
	Ready bool
}

// IsGuest is true when no authenticated user is present. Token validity
// is deliberately not checked here: a user without a valid token is
// still a non-guest session, and server-side operations are left to
// fail and propagate rather than silently downgrading to guest behavior.
func (s State) IsGuest() bool {
	return s.User == nil
}

// Manager tracks the current session's user/token pair and keeps it in
// durable session storage.
type Manager struct {
	api   *backend.Client
	store storage.Store
}

func NewManager(api *backend.Client, store storage.Store) *Manager {
	return &Manager{api: api, store: store}
}

// Login authenticates against the backend and persists the session. Any
// failure, network or storage, clears every session key first so a
// failed login never leaves partial session state behind.
func (m *Manager) Login(ctx context.Context, sessionID, email, password string) (*models.User, error) {
	user, token, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.clearSession(ctx, sessionID)
		return nil, err
	}

	raw, err := json.Marshal(user)
	if err != nil {
		m.clearSession(ctx, sessionID)
		return nil, err
	}
	if err := m.store.Set(ctx, sessionID, storage.KeyToken, token); err != nil {
		m.clearSession(ctx, sessionID)
		return nil, err
	}
	if err := m.store.Set(ctx, sessionID, storage.KeyCurrentUser, string(raw)); err != nil {
		m.clearSession(ctx, sessionID)
		return nil, err
	}
	if err := m.store.Set(ctx, sessionID, storage.KeyIsLoggedIn, "true"); err != nil {
		m.clearSession(ctx, sessionID)
		return nil, err
	}
	return user, nil
}

// Register creates the account but does not log in; the storefront
// redirects to the login page afterwards.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	return m.api.Register(ctx, name, email, password)
}

// Logout wipes the session keys unconditionally. No network call.
func (m *Manager) Logout(ctx context.Context, sessionID string) {
	m.clearSession(ctx, sessionID)
}

// State hydrates the auth state from session storage. A storage failure
// leaves Ready false; absent keys mean an anonymous, ready session.
func (m *Manager) State(ctx context.Context, sessionID string) State {
	token, err := m.store.Get(ctx, sessionID, storage.KeyToken)
	if err != nil && err != storage.ErrNotFound {
		return State{}
	}
	raw, err := m.store.Get(ctx, sessionID, storage.KeyCurrentUser)
	if err != nil {
		if err == storage.ErrNotFound {
			return State{Token: token, Ready: true}
		}
		return State{}
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		// Corrupt record: drop the session rather than limping along.
		m.clearSession(ctx, sessionID)
		return State{Ready: true}
	}
	return State{User: &user, Token: token, Ready: true}
}

func (m *Manager) clearSession(ctx context.Context, sessionID string) {
	_ = m.store.Delete(ctx, sessionID,
		storage.KeyToken, storage.KeyCurrentUser, storage.KeyIsLoggedIn)
}
