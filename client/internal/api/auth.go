package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// ObtainToken exchanges credentials for an access/refresh token pair.
func ObtainToken(ctx context.Context, httpClient HTTPClient, baseURL string, creds types.Credentials) (*types.TokenPair, error) {
	const op = "authenticate"
	if err := types.Prepare(op, &creds); err != nil {
		return nil, err
	}
	var pair types.TokenPair
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/auth/jwt/create/"), op, creds, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// RefreshToken trades a refresh token for a new access token.
func RefreshToken(ctx context.Context, httpClient HTTPClient, baseURL, refresh string) (string, error) {
	const op = "refresh token"
	var out types.RefreshResponse
	in := map[string]string{"refresh": refresh}
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/auth/jwt/refresh/"), op, in, &out); err != nil {
		return "", err
	}
	return out.Access, nil
}

// Me returns the user the current token belongs to.
func Me(ctx context.Context, httpClient HTTPClient, baseURL string) (*types.User, error) {
	var user types.User
	if err := getJSON(ctx, httpClient, endpoint(baseURL, "/api/auth/users/me/"), "get current user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
