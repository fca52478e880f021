package api

import (
	"context"
	"net/http"
	"testing"

	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
	"github.com/eureka-residences/erkseed/client/internal/types"
)

func TestCreateFloor_GroundFloorSendsZero(t *testing.T) {
	t.Parallel()
	srv, rec, _ := stubServer(t, http.StatusCreated, types.Floor{ID: "f0", Number: 0})
	got, err := CreateFloor(context.Background(), srv.Client(), srv.URL, types.CreateFloorRequest{
		Building: "b1", Number: types.Ptr(0), ChemicalCode: "H", Name: "Hydrogène",
	})
	if err != nil || got.ID != "f0" {
		t.Fatalf("CreateFloor unexpected: got=%+v err=%v", got, err)
	}
	if rec.Path != "/api/patrimoine/floors/" || rec.Body["number"] != float64(0) || rec.Body["floor_plan"] != nil {
		t.Fatalf("unexpected request: %+v", rec)
	}
}

func TestCreateFloor_MissingNumber(t *testing.T) {
	t.Parallel()
	srv, _, hits := stubServer(t, http.StatusCreated, nil)
	_, err := CreateFloor(context.Background(), srv.Client(), srv.URL, types.CreateFloorRequest{Building: "b1", ChemicalCode: "H"})
	if !clerrors.IsValidation(err) || *hits != 0 {
		t.Fatalf("expected local validation failure, got %v (hits=%d)", err, *hits)
	}
}

func TestListFloors_ByBuilding(t *testing.T) {
	t.Parallel()
	page := types.Page[types.Floor]{Count: 2, Results: []types.Floor{{ID: "f0", Number: 0}, {ID: "f1", Number: 1}}}
	srv, rec, _ := stubServer(t, http.StatusOK, page)
	got, err := ListFloors(context.Background(), srv.Client(), srv.URL, map[string]string{"building": "b1"})
	if err != nil || len(got) != 2 || got[1].Number != 1 {
		t.Fatalf("ListFloors unexpected: got=%+v err=%v", got, err)
	}
	if rec.Query != "building=b1" {
		t.Fatalf("query = %q", rec.Query)
	}
}
