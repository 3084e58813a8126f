package auth

import (
	"errors"
	"fmt"
	"time"
)

// Session is the live authenticated session. It mirrors what the identity
// provider returned at sign-in and is refreshed transparently before expiry.
type Session struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email,omitempty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

func (s *Session) IsExpired() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(s.ExpiresAt)
}

// NeedsRefresh reports whether the token is within the refresh window.
// Refreshing ahead of expiry keeps authenticated calls from racing the
// server-side cutoff.
func (s *Session) NeedsRefresh() bool {
	if s.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().Add(5 * time.Minute).After(s.ExpiresAt)
}

// ErrNoSession indicates there is no usable session; the caller must send
// the user through sign-in rather than issue an authenticated call.
var ErrNoSession = errors.New("not signed in")

// AuthError is a failure of authentication itself: bad credentials, a policy
// violation at sign-up, or a session the server no longer accepts. It is
// never retried silently.
type AuthError struct {
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("auth: %s", e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("auth: %v", e.Err)
	}
	return "auth: authentication failed"
}

func (e *AuthError) Unwrap() error { return e.Err }
