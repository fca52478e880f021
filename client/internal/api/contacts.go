package api

import (
	"context"

	"github.com/eureka-residences/erkseed/client/internal/types"
)

// CreateContact creates a directory contact.
func CreateContact(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateContactRequest) (*types.Contact, error) {
	const op = "create contact"
	if err := types.Prepare(op, &req); err != nil {
		return nil, err
	}
	var c types.Contact
	if err := postJSON(ctx, httpClient, endpoint(baseURL, "/api/contacts/"), op, req, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
