package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateBuilding creates a building and returns it with its server id.
func CreateBuilding(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateBuildingRequest) (*types.Building, error) {
	const op = "create building"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var b types.Building
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/patrimoine/buildings/"), op, req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBuildings returns one page of buildings.
// Supported params: manager, is_active, search, ordering, page.
func ListBuildings(ctx context.Context, httpClient HTTPClient, baseURL string, params map[string]string) ([]types.Building, error) {
	return listPage[types.Building](ctx, httpClient, endpoint(baseURL, "/api/patrimoine/buildings/"), "list buildings", params)
}
