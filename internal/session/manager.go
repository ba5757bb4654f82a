package session

import (
	"context"
	"fmt"
	"time"

	"quill/internal/middleware"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the cookie carrying the session token.
const CookieName = "quill_session"

// Manager converts an authenticated user into an opaque session token and
// back across requests. Lifecycle: Anonymous -> Establish -> Authenticated
// -> Terminate -> Anonymous.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager returns a Manager backed by Redis when a client is provided,
// otherwise by the in-process fallback store.
func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	var store Store
	if client != nil {
		store = NewRedisStore(client)
	} else {
		middleware.Logger.Warn("Redis unavailable, sessions will not survive restarts")
		store = NewMemoryStore()
	}
	return &Manager{store: store, ttl: ttl}
}

// NewManagerWithStore returns a Manager on an explicit store.
func NewManagerWithStore(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// TTL returns the session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish creates a session for the user and returns the opaque token.
func (m *Manager) Establish(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := m.store.Save(ctx, token, userID, m.ttl); err != nil {
		return "", fmt.Errorf("establish session: %w", err)
	}
	middleware.ActiveSessions.Inc()
	return token, nil
}

// Resolve returns the user ID bound to the token, or false when the token
// is unknown, expired or terminated.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	userID, ok, err := m.store.Lookup(ctx, token)
	if err != nil {
		return 0, false, fmt.Errorf("resolve session: %w", err)
	}
	return userID, ok, nil
}

// Terminate invalidates the token; subsequent Resolve calls return absent.
func (m *Manager) Terminate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}
	middleware.ActiveSessions.Dec()
	return nil
}
