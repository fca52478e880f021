package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateUnit creates a managed unit on a floor.
func CreateUnit(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateUnitRequest) (*types.Unit, error) {
	const op = "create unit"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var u types.Unit
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/patrimoine/units/"), op, req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
