package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
)

// Client talks to the identity provider's REST endpoints. It issues and
// refreshes sessions; it does not store them (see Store and Guard).
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewClient(baseURL, anonKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshGrant struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type identityError struct {
	Message          string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Detail           string `json:"detail"`
}

func (e identityError) detail() string {
	for _, s := range []string{e.Detail, e.Message, e.ErrorDescription} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SignIn exchanges credentials for a session. Invalid credentials come back
// as *AuthError; network failures are wrapped transport errors.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	tok, err := c.tokenRequest(ctx, "password", passwordGrant{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	logger.InfoCF("auth", "Signed in", map[string]any{"user_id": tok.User.ID})
	return sessionFromToken(tok), nil
}

// Refresh exchanges a refresh token for a new session. A rejected refresh
// token means the session is gone for good; callers clear the store.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	tok, err := c.tokenRequest(ctx, "refresh_token", refreshGrant{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	logger.DebugCF("auth", "Session refreshed", map[string]any{"user_id": tok.User.ID})
	return sessionFromToken(tok), nil
}

// SignUp registers an account. The account may still need external email
// verification before SignIn succeeds.
func (c *Client) SignUp(ctx context.Context, email, password string) error {
	body, err := json.Marshal(passwordGrant{Email: email, Password: password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/auth/v1/signup", bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("signup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &AuthError{Detail: readDetail(resp.Body, "sign-up rejected")}
	}
	logger.InfoC("auth", "Account created")
	return nil
}

// SignOut revokes the session server-side. Failures are logged and
// swallowed; the local session is destroyed regardless (see Guard.SignOut).
func (c *Client) SignOut(ctx context.Context, accessToken string) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.DebugCF("auth", "Server-side sign-out failed", map[string]any{"error": err.Error()})
		return
	}
	resp.Body.Close()
}

func (c *Client) tokenRequest(ctx context.Context, grantType string, payload any) (*tokenResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/auth/v1/token?grant_type=" + grantType
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fallback := "invalid credentials"
		if grantType == "refresh_token" {
			fallback = "session expired, please sign in again"
		}
		return nil, &AuthError{Detail: readDetail(resp.Body, fallback)}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, &AuthError{Detail: "identity provider returned no token"}
	}
	return &tok, nil
}

func (c *Client) setHeaders(req *http.Request, bearer string) {
	req.Header.Set("Content-Type", "application/json")
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}

func readDetail(r io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return fallback
	}
	var ie identityError
	if err := json.Unmarshal(data, &ie); err == nil {
		if d := ie.detail(); d != "" {
			return d
		}
	}
	return fallback
}

func sessionFromToken(tok *tokenResponse) *Session {
	sess := &Session{
		UserID:       tok.User.ID,
		Email:        tok.User.Email,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if tok.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return sess
}
