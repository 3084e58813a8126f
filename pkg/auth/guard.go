package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
)

// IdentityProvider is the slice of Client the Guard needs. Tests substitute
// a fake.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	SignUp(ctx context.Context, email, password string) error
	SignOut(ctx context.Context, accessToken string)
}

// Guard owns the session lifecycle: it is the only component that reads or
// writes the session store, and every authenticated call in the client gets
// its bearer token from here. When no valid token can be produced the
// caller aborts the action instead of issuing a malformed call.
type Guard struct {
	provider IdentityProvider
	store    *Store
	mu       sync.Mutex
}

func NewGuard(provider IdentityProvider, store *Store) *Guard {
	return &Guard{provider: provider, store: store}
}

// CurrentSession returns the live session, transparently refreshing it when
// it is near or past expiry. Returns ErrNoSession (or *AuthError) when no
// usable session exists.
func (g *Guard) CurrentSession(ctx context.Context) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess, err := g.store.Load()
	if err != nil {
		return nil, err
	}

	if !sess.NeedsRefresh() {
		return sess, nil
	}

	if sess.RefreshToken == "" {
		if sess.IsExpired() {
			_ = g.store.Clear()
			return nil, &AuthError{Detail: "session expired, please sign in again"}
		}
		return sess, nil
	}

	fresh, err := g.provider.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			// The refresh token is dead; force re-authentication.
			_ = g.store.Clear()
			return nil, authErr
		}
		// Transport trouble: the old token may still work if not yet expired.
		if !sess.IsExpired() {
			logger.WarnCF("auth", "Session refresh failed, using current token", map[string]any{"error": err.Error()})
			return sess, nil
		}
		return nil, err
	}

	if err := g.store.Save(fresh); err != nil {
		logger.WarnCF("auth", "Failed to persist refreshed session", map[string]any{"error": err.Error()})
	}
	return fresh, nil
}

// Token returns a fresh bearer token for an authenticated call.
func (g *Guard) Token(ctx context.Context) (string, error) {
	sess, err := g.CurrentSession(ctx)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

func (g *Guard) SignIn(ctx context.Context, email, password string) (*Session, error) {
	sess, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.store.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (g *Guard) SignUp(ctx context.Context, email, password string) error {
	return g.provider.SignUp(ctx, email, password)
}

// SignOut destroys the session unconditionally. The server-side revocation
// is best effort; the local session is always cleared, and signing out
// twice is fine.
func (g *Guard) SignOut(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if sess, err := g.store.Load(); err == nil {
		g.provider.SignOut(ctx, sess.AccessToken)
	}
	return g.store.Clear()
}
