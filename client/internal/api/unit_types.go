package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateUnitType creates a unit type.
func CreateUnitType(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateUnitTypeRequest) (*types.UnitType, error) {
	const op = "create unit type"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var ut types.UnitType
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/patrimoine/unit-types/"), op, req, &ut); err != nil {
		return nil, err
	}
	return &ut, nil
}

// ListUnitTypes returns one page of unit types.
// Supported params: is_composite, is_rentable, is_active, search, ordering, page.
func ListUnitTypes(ctx context.Context, httpClient HTTPClient, baseURL string, params map[string]string) ([]types.UnitType, error) {
	return listPage[types.UnitType](ctx, httpClient, endpoint(baseURL, "/api/patrimoine/unit-types/"), "list unit types", params)
}
