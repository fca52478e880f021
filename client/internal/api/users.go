package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateUser registers a new account. The API does not echo the created
// user reliably, so only the error is returned.
func CreateUser(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateUserRequest) error {
	const op = "create user"
	if err := types.Prepare(op, &req); err != nil {
		return err
	}
	return postJSON(ctx, httpClient, endpoint(baseURL, "/api/auth/users/"), op, req, nil)
}

// ListUsers returns one page of users. Supported params: page.
func ListUsers(ctx context.Context, httpClient HTTPClient, baseURL string, params map[string]string) ([]types.User, error) {
	return listPage[types.User](ctx, httpClient, endpoint(baseURL, "/api/auth/users/"), "list users", params)
}
