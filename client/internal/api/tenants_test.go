package api

import (
	"context"
	"net/http"
	"testing"

	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
	"github.com/eureka-residences/erkseed/client/internal/types"
)

func TestCreateTenant(t *testing.T) {
	t.Parallel()
	srv, rec, _ := stubServer(t, http.StatusCreated, types.Tenant{UserID: "u1"})
	got, err := CreateTenant(context.Background(), srv.Client(), srv.URL, types.CreateTenantRequest{UserID: "u1"})
	if err != nil || got.UserID != "u1" {
		t.Fatalf("CreateTenant unexpected: got=%+v err=%v", got, err)
	}
	if rec.Path != "/api/rental/tenants/" || rec.Body["notes"] != "" || rec.Body["current_unit_id"] != nil {
		t.Fatalf("unexpected request: %+v", rec)
	}
}

func TestCreateTenant_RequiresUser(t *testing.T) {
	t.Parallel()
	srv, _, hits := stubServer(t, http.StatusCreated, nil)
	if _, err := CreateTenant(context.Background(), srv.Client(), srv.URL, types.CreateTenantRequest{Notes: "x"}); !clerrors.IsValidation(err) || *hits != 0 {
		t.Fatalf("expected local validation failure, got %v", err)
	}
}
