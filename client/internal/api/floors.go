package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateFloor creates a floor inside a building.
func CreateFloor(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateFloorRequest) (*types.Floor, error) {
	const op = "create floor"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var f types.Floor
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/patrimoine/floors/"), op, req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFloors returns one page of floors.
// Supported params: building, is_active, search, ordering, page.
func ListFloors(ctx context.Context, httpClient HTTPClient, baseURL string, params map[string]string) ([]types.Floor, error) {
	return listPage[types.Floor](ctx, httpClient, endpoint(baseURL, "/api/patrimoine/floors/"), "list floors", params)
}
