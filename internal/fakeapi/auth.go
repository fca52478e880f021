package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eureka-residences/erkseed/internal/fakeapi/respond"
)

type ctxKey int

const userIDKey ctxKey = iota

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// mint signs a token of kind for userID.
func (s *Server) mint(kind, userID string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"token_type": kind,
		"user_id":    userID,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.opts.Secret)
}

// verify checks the signature, expiry and token type, returning the user id.
func (s *Server) verify(token, kind string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if claims["token_type"] != kind {
		return "", errors.New("wrong token type")
	}
	uid, _ := claims["user_id"].(string)
	if uid == "" {
		return "", errors.New("token has no user_id")
	}
	return uid, nil
}

// requireAuth rejects requests without a valid bearer access token.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			respond.WriteUnauthorized(w, "Authentication credentials were not provided.")
			return
		}
		uid, err := s.verify(strings.TrimPrefix(h, "Bearer "), tokenTypeAccess)
		if err != nil {
			respond.WriteUnauthorized(w, "Given token not valid for any token type")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, uid)))
	})
}

func (s *Server) handleTokenCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteDetail(w, http.StatusBadRequest, "JSON parse error")
		return
	}
	errs := respond.FieldErrors{}
	if in.Email == "" {
		errs.Add("email", "This field is required.")
	}
	if in.Password == "" {
		errs.Add("password", "This field is required.")
	}
	if len(errs) > 0 {
		respond.WriteFieldErrors(w, errs)
		return
	}

	u, ok := s.coll(resUsers).find("email", in.Email)
	if !ok || u.str("password") != in.Password || u["is_active"] == false {
		respond.WriteUnauthorized(w, "No active account found with the given credentials")
		return
	}
	access, err := s.mint(tokenTypeAccess, u.str("id"), s.opts.AccessTTL)
	if err != nil {
		respond.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	refresh, err := s.mint(tokenTypeRefresh, u.str("id"), s.opts.RefreshTTL)
	if err != nil {
		respond.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"access": access, "refresh": refresh})
}

func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Refresh == "" {
		respond.WriteFieldErrors(w, respond.FieldErrors{"refresh": {"This field is required."}})
		return
	}
	uid, err := s.verify(in.Refresh, tokenTypeRefresh)
	if err != nil {
		respond.WriteUnauthorized(w, "Token is invalid or expired")
		return
	}
	access, err := s.mint(tokenTypeAccess, uid, s.opts.AccessTTL)
	if err != nil {
		respond.WriteDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	uid, _ := r.Context().Value(userIDKey).(string)
	u, ok := s.coll(resUsers).get(uid)
	if !ok {
		respond.WriteNotFound(w)
		return
	}
	respond.WriteJSON(w, http.StatusOK, present(s.res[resUsers], u))
}
