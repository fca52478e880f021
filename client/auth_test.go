package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestAuthenticate_StoresTokenAndSendsBearer(t *testing.T) {
	t.Parallel()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	access := mintToken(t, "u-1", exp)

	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/jwt/create/":
			_ = json.NewEncoder(w).Encode(map[string]string{"access": access, "refresh": "r-1"})
		case "/api/auth/users/me/":
			gotAuth = r.Header.Get("Authorization")
			gotReqID = r.Header.Get(RequestIDHeader)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "u-1", "email": "admin@example.com", "is_staff": true})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pair, err := c.Authenticate(context.Background(), Credentials{Email: "admin@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if pair.Refresh != "r-1" || c.AccessToken() != access {
		t.Fatalf("token pair not stored: %+v", pair)
	}
	if !c.TokenExpiry().Equal(exp) {
		t.Fatalf("expiry=%v want %v", c.TokenExpiry(), exp)
	}
	if c.tokens.userID() != "u-1" {
		t.Fatalf("user id=%q", c.tokens.userID())
	}

	me, err := c.Me(context.Background())
	if err != nil || me.Email != "admin@example.com" {
		t.Fatalf("Me unexpected: got=%+v err=%v", me, err)
	}
	if gotAuth != "Bearer "+access {
		t.Fatalf("Authorization=%q", gotAuth)
	}
	if gotReqID == "" {
		t.Fatalf("missing %s header", RequestIDHeader)
	}
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.c", Password: "x"})
	if err == nil || StatusCode(err) != http.StatusUnauthorized || !IsIrrecoverable(err) {
		t.Fatalf("expected 401 irrecoverable, got %v", err)
	}
	if c.AccessToken() != "" {
		t.Fatalf("token must stay empty after failed login")
	}
}

func TestAuthenticate_MissingFieldsNotSent(t *testing.T) {
	t.Parallel()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Authenticate(context.Background(), Credentials{Email: "a@b.c"})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("request sent despite missing password")
	}
}

func TestEnsureFreshToken(t *testing.T) {
	t.Parallel()
	var refreshed int32
	fresh := mintToken(t, "u-1", time.Now().Add(time.Hour))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if r.URL.Path != "/api/auth/jwt/refresh/" || in["refresh"] != "r-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		atomic.AddInt32(&refreshed, 1)
		_ = json.NewEncoder(w).Encode(map[string]string{"access": fresh})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	if err := c.EnsureFreshToken(context.Background(), time.Minute); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	c.tokens.set(mintToken(t, "u-1", time.Now().Add(10*time.Second)), "r-1")
	if err := c.EnsureFreshToken(context.Background(), time.Second); err != nil {
		t.Fatalf("EnsureFreshToken: %v", err)
	}
	if atomic.LoadInt32(&refreshed) != 0 {
		t.Fatalf("refreshed a token outside the leeway")
	}
	if err := c.EnsureFreshToken(context.Background(), time.Minute); err != nil {
		t.Fatalf("EnsureFreshToken: %v", err)
	}
	if atomic.LoadInt32(&refreshed) != 1 || c.AccessToken() != fresh {
		t.Fatalf("token not refreshed")
	}
}

func TestRefreshToken_WithoutRefreshToken(t *testing.T) {
	t.Parallel()
	c, _ := New("http://example.com", WithAccessToken("opaque"))
	if err := c.RefreshToken(context.Background()); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if !c.TokenExpiry().IsZero() {
		t.Fatalf("opaque token should have no expiry")
	}
}
