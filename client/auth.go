package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/eureka-residences/erkseed/client/internal/api"
	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// tokenStore holds the bearer token pair obtained by Authenticate.
type tokenStore struct {
	mu        sync.RWMutex
	access    string
	refresh   string
	subject   string
	expiresAt time.Time // zero when the token carries no exp claim
}

func (s *tokenStore) set(access, refresh string) {
	claims, err := parseAccessClaims(access)
	if err != nil {
		log.Debug().Err(err).Msg("access token is not a readable JWT; expiry unknown")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	s.subject = claims.subject
	s.expiresAt = claims.expiresAt
}

func (s *tokenStore) snapshot() (access, refresh string, expiresAt time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh, s.expiresAt
}

func (s *tokenStore) userID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subject
}

type accessClaims struct {
	subject   string
	expiresAt time.Time
}

// parseAccessClaims reads the user and expiry out of an access token without
// verifying its signature; the server remains the authority on validity.
func parseAccessClaims(token string) (accessClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return accessClaims{}, err
	}
	var out accessClaims
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.expiresAt = exp.Time
	}
	if uid, ok := claims["user_id"]; ok {
		out.subject = fmt.Sprint(uid)
	} else if sub, err := claims.GetSubject(); err == nil {
		out.subject = sub
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// authTransport adds the bearer token (when one is held) and a request id.
type authTransport struct {
	base   http.RoundTripper
	tokens *tokenStore
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	if access, _, _ := t.tokens.snapshot(); access != "" {
		cloned.Header.Set("Authorization", "Bearer "+access)
	}
	if cloned.Header.Get(RequestIDHeader) == "" {
		cloned.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Authentication operations - delegated to internal/api
// --------------------------------------------------------------------

// Authenticate logs in with creds and uses the returned access token for
// every later call.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*TokenPair, error) {
	pair, err := api.ObtainToken(ctx, c.http, c.baseURL, creds)
	if err != nil {
		c.failed("authenticate", creds.Email, err)
		return nil, err
	}
	c.tokens.set(pair.Access, pair.Refresh)

	_, _, exp := c.tokens.snapshot()
	ev := log.Info().Str("email", creds.Email).Str("user_id", c.tokens.userID())
	if !exp.IsZero() {
		ev = ev.Time("expires_at", exp)
	}
	ev.Msg("authenticated")
	log.Debug().Str("access_token", truncate(pair.Access, 50)).Msg("access token prefix")
	return pair, nil
}

// AccessToken returns the current bearer token, or "" before Authenticate.
func (c *Client) AccessToken() string {
	access, _, _ := c.tokens.snapshot()
	return access
}

// TokenExpiry returns the access token expiry, zero when unknown.
func (c *Client) TokenExpiry() time.Time {
	_, _, exp := c.tokens.snapshot()
	return exp
}

// RefreshToken obtains a new access token with the stored refresh token.
func (c *Client) RefreshToken(ctx context.Context) error {
	_, refresh, _ := c.tokens.snapshot()
	if refresh == "" {
		return fmt.Errorf("refresh token: %w", clerrors.ErrNotAuthenticated)
	}
	access, err := api.RefreshToken(ctx, c.http, c.baseURL, refresh)
	if err != nil {
		c.failed("refresh token", "", err)
		return err
	}
	c.tokens.set(access, "")
	log.Info().Time("expires_at", c.TokenExpiry()).Msg("access token refreshed")
	return nil
}

// EnsureFreshToken refreshes the access token when it expires within leeway.
// Tokens without a readable expiry are left alone.
func (c *Client) EnsureFreshToken(ctx context.Context, leeway time.Duration) error {
	access, _, exp := c.tokens.snapshot()
	if access == "" {
		return clerrors.ErrNotAuthenticated
	}
	if exp.IsZero() || time.Until(exp) > leeway {
		return nil
	}
	return c.RefreshToken(ctx)
}

// Me returns the authenticated user; use it to verify the connection.
func (c *Client) Me(ctx context.Context) (*User, error) {
	u, err := api.Me(ctx, c.http, c.baseURL)
	if err != nil {
		c.failed("get current user", "", err)
		return nil, err
	}
	log.Info().Str("id", u.ID).Str("email", u.Email).Bool("is_staff", u.IsStaff).Msg("connected user")
	return u, nil
}
