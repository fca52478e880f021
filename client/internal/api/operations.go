package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateOperationCategory creates an operation category.
func CreateOperationCategory(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateOperationCategoryRequest) (*types.OperationCategory, error) {
	const op = "create operation category"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var c types.OperationCategory
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/operations/categories/"), op, req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListOperationCategories returns one page of operation categories.
// Supported params: is_active, code, search, ordering, page.
func ListOperationCategories(ctx context.Context, httpClient HTTPClient, baseURL string, params map[string]string) ([]types.OperationCategory, error) {
	return listPage[types.OperationCategory](ctx, httpClient, endpoint(baseURL, "/api/operations/categories/"), "list operation categories", params)
}

// CreateOperationType creates an operation type attached to a category.
func CreateOperationType(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateOperationTypeRequest) (*types.OperationType, error) {
	const op = "create operation type"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var t types.OperationType
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/operations/types/"), op, req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
