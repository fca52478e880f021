package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// BatchFailure is one item of a batch that could not be created.
type BatchFailure struct {
	Index int
	Key   string
	Err   error
}

// BatchResult summarises a batch. Items are sent one at a time in input
// order and a failure never stops the batch.
type BatchResult struct {
	Kind      string
	Total     int
	Succeeded int
	Failures  []BatchFailure
}

// OK reports whether every item was created.
func (r BatchResult) OK() bool { return r.Succeeded == r.Total }

// Failed returns the number of items that were not created.
func (r BatchResult) Failed() int { return len(r.Failures) }

func (r BatchResult) String() string {
	return fmt.Sprintf("%s: %d/%d created", r.Kind, r.Succeeded, r.Total)
}

// runBatch calls create for each item. A cancelled context marks the
// remaining items as failed without sending them.
func runBatch[T any](ctx context.Context, kind string, items []T, key func(T) string, create func(context.Context, T) error) BatchResult {
	res := BatchResult{Kind: kind, Total: len(items)}
	for i, it := range items {
		var err error
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else {
			err = create(ctx, it)
		}
		if err != nil {
			res.Failures = append(res.Failures, BatchFailure{Index: i, Key: key(it), Err: err})
			batchItemsTotal.WithLabelValues(kind, "failure").Inc()
			continue
		}
		res.Succeeded++
		batchItemsTotal.WithLabelValues(kind, "success").Inc()
	}
	log.Info().Str("kind", kind).Int("total", res.Total).Int("succeeded", res.Succeeded).Int("failed", res.Failed()).Msg("batch finished")
	return res
}

// AddUsers creates each account in order.
func (c *Client) AddUsers(ctx context.Context, reqs []CreateUserRequest) BatchResult {
	return runBatch(ctx, "users", reqs,
		func(r CreateUserRequest) string { return r.Email },
		func(ctx context.Context, r CreateUserRequest) error { return c.CreateUser(ctx, r) })
}

// AddBuildings creates each building in order.
func (c *Client) AddBuildings(ctx context.Context, reqs []CreateBuildingRequest) BatchResult {
	return runBatch(ctx, "buildings", reqs,
		func(r CreateBuildingRequest) string { return r.Name },
		func(ctx context.Context, r CreateBuildingRequest) error {
			_, err := c.CreateBuilding(ctx, r)
			return err
		})
}

// AddFloors creates each floor in order.
func (c *Client) AddFloors(ctx context.Context, reqs []CreateFloorRequest) BatchResult {
	return runBatch(ctx, "floors", reqs,
		func(r CreateFloorRequest) string {
			if r.Number == nil {
				return r.Building
			}
			return FloorKey(r.Building, *r.Number)
		},
		func(ctx context.Context, r CreateFloorRequest) error {
			_, err := c.CreateFloor(ctx, r)
			return err
		})
}

// AddUnitTypes creates each unit type in order.
func (c *Client) AddUnitTypes(ctx context.Context, reqs []CreateUnitTypeRequest) BatchResult {
	return runBatch(ctx, "unit-types", reqs,
		func(r CreateUnitTypeRequest) string { return r.Code },
		func(ctx context.Context, r CreateUnitTypeRequest) error {
			_, err := c.CreateUnitType(ctx, r)
			return err
		})
}

// AddUnits creates each unit in order.
func (c *Client) AddUnits(ctx context.Context, reqs []CreateUnitRequest) BatchResult {
	return runBatch(ctx, "units", reqs,
		func(r CreateUnitRequest) string { return r.Identifier },
		func(ctx context.Context, r CreateUnitRequest) error {
			_, err := c.CreateUnit(ctx, r)
			return err
		})
}

// AddTenants creates each tenant in order.
func (c *Client) AddTenants(ctx context.Context, reqs []CreateTenantRequest) BatchResult {
	return runBatch(ctx, "tenants", reqs,
		func(r CreateTenantRequest) string { return r.UserID },
		func(ctx context.Context, r CreateTenantRequest) error {
			_, err := c.CreateTenant(ctx, r)
			return err
		})
}

// AddOperationCategories creates each category in order.
func (c *Client) AddOperationCategories(ctx context.Context, reqs []CreateOperationCategoryRequest) BatchResult {
	return runBatch(ctx, "operation-categories", reqs,
		func(r CreateOperationCategoryRequest) string { return r.Code },
		func(ctx context.Context, r CreateOperationCategoryRequest) error {
			_, err := c.CreateOperationCategory(ctx, r)
			return err
		})
}

// AddOperationTypes creates each operation type in order.
func (c *Client) AddOperationTypes(ctx context.Context, reqs []CreateOperationTypeRequest) BatchResult {
	return runBatch(ctx, "operation-types", reqs,
		func(r CreateOperationTypeRequest) string { return r.Code },
		func(ctx context.Context, r CreateOperationTypeRequest) error {
			_, err := c.CreateOperationType(ctx, r)
			return err
		})
}

// AddContacts creates each contact in order.
func (c *Client) AddContacts(ctx context.Context, reqs []CreateContactRequest) BatchResult {
	return runBatch(ctx, "contacts", reqs,
		func(r CreateContactRequest) string {
			return strings.TrimSpace(r.FirstName + " " + r.LastName)
		},
		func(ctx context.Context, r CreateContactRequest) error {
			_, err := c.CreateContact(ctx, r)
			return err
		})
}
