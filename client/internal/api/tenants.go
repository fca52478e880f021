package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateTenant registers an existing user as a tenant.
func CreateTenant(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateTenantRequest) (*types.Tenant, error) {
	const op = "create tenant"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var t types.Tenant
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/rental/tenants/"), op, req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
