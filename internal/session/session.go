// Wellness Escape | 2026
// session.go

// Package session implements opaque server-side auth sessions. The browser
// holds a random token in an HttpOnly cookie; the server stores a record
// keyed by the token's hash, in Redis when available or in memory otherwise.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/core"
)

type Session struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store persists sessions keyed by token hash. Get must not return expired
// sessions; Delete is idempotent.
type Store interface {
	Save(ctx context.Context, tokenHash string, sess Session) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

type Manager struct {
	store Store
	cfg   config.SessionConfig
}

func NewManager(store Store, cfg config.SessionConfig) *Manager {
	return &Manager{store: store, cfg: cfg}
}

// Issue creates a fresh session for the user and sets the auth cookie.
// Multiple concurrent sessions per user are allowed.
func (m *Manager) Issue(
	ctx context.Context,
	w http.ResponseWriter,
	userID string,
) error {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return fmt.Errorf("issue session: %w", err)
	}

	now := time.Now()
	sess := Session{
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.TTL),
	}

	if err := m.store.Save(ctx, core.HashToken(token), sess); err != nil {
		return fmt.Errorf("issue session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Resolve returns the session bound to the request cookie, or
// core.ErrSessionExpired when there is no usable session.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, core.ErrSessionExpired
	}

	sess, err := m.store.Get(ctx, core.HashToken(cookie.Value))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, core.ErrSessionExpired
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	return sess, nil
}

// Destroy invalidates the request's session and clears the cookie. Destroying
// an absent session is not an error.
func (m *Manager) Destroy(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
) error {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, core.HashToken(cookie.Value)); err != nil {
			return fmt.Errorf("destroy session: %w", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
