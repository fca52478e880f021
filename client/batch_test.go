package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// batchServer accepts every create except those whose "code" is "BAD".
func batchServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		var in map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		if in["code"] == "BAD" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":["unit type with this code already exists."]}`))
			return
		}
		in["id"] = string(rune('a' + n))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestAddUnitTypes_ContinuesAfterFailure(t *testing.T) {
	t.Parallel()
	srv, hits := batchServer(t)
	c, _ := New(srv.URL)

	res := c.AddUnitTypes(context.Background(), []CreateUnitTypeRequest{
		{Name: "Chambre", Code: "CHAMBRE"},
		{Name: "Doublon", Code: "BAD"},
		{Name: "", Code: "NONAME"},
		{Name: "Couloir", Code: "COULOIR"},
	})
	if res.Total != 4 || res.Succeeded != 2 || res.Failed() != 2 || res.OK() {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Failures[0].Index != 1 || res.Failures[0].Key != "BAD" || StatusCode(res.Failures[0].Err) != http.StatusBadRequest {
		t.Fatalf("first failure: %+v", res.Failures[0])
	}
	if !IsValidation(res.Failures[1].Err) {
		t.Fatalf("second failure should be a validation error: %v", res.Failures[1].Err)
	}
	// the nameless item never reaches the server
	if atomic.LoadInt32(hits) != 3 {
		t.Fatalf("hits=%d want 3", atomic.LoadInt32(hits))
	}
	if _, ok := c.Registry().Get("CHAMBRE"); !ok {
		t.Fatalf("CHAMBRE not registered")
	}
	if _, ok := c.Registry().Get("BAD"); ok {
		t.Fatalf("failed item must not be registered")
	}
	if res.String() != "unit-types: 2/4 created" {
		t.Fatalf("String()=%q", res.String())
	}
}

func TestAddFloors_RegistersByBuildingAndNumber(t *testing.T) {
	t.Parallel()
	srv, _ := batchServer(t)
	c, _ := New(srv.URL)

	res := c.AddFloors(context.Background(), []CreateFloorRequest{
		{Building: "b-1", Number: Ptr(0), ChemicalCode: "H", Name: "Hydrogène"},
		{Building: "b-1", Number: Ptr(1), ChemicalCode: "N", Name: "Azote"},
	})
	if !res.OK() {
		t.Fatalf("unexpected failures: %+v", res.Failures)
	}
	for _, n := range []int{0, 1} {
		if _, ok := c.Registry().Get(FloorKey("b-1", n)); !ok {
			t.Fatalf("floor %d not registered", n)
		}
	}
}

func TestAddContacts_CancelledContext(t *testing.T) {
	t.Parallel()
	srv, hits := batchServer(t)
	c, _ := New(srv.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.AddContacts(ctx, []CreateContactRequest{
		{FirstName: "A", LastName: "B", PhoneNumber: "1"},
		{FirstName: "C", LastName: "D", PhoneNumber: "2"},
	})
	if res.Succeeded != 0 || res.Failed() != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if atomic.LoadInt32(hits) != 0 {
		t.Fatalf("requests sent after cancel")
	}
}

func TestAddContacts_SharedKeyKeepsLastID(t *testing.T) {
	t.Parallel()
	srv, hits := batchServer(t)
	c, _ := New(srv.URL)

	res := c.AddContacts(context.Background(), []CreateContactRequest{
		{FirstName: "N/A", LastName: "N/A", PhoneNumber: "1"},
		{FirstName: "N/A", LastName: "N/A", PhoneNumber: "2"},
		{FirstName: "N/A", LastName: "N/A", PhoneNumber: "3"},
	})
	if !res.OK() || res.Succeeded != 3 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if atomic.LoadInt32(hits) != 3 {
		t.Fatalf("hits=%d want 3", atomic.LoadInt32(hits))
	}
	if c.Registry().Len() != 1 {
		t.Fatalf("registry=%v", c.Registry().Snapshot())
	}
	if _, ok := c.Registry().Get(ContactKey("N/A", "N/A")); !ok {
		t.Fatalf("contact key missing")
	}
}

func TestAddUsers_EmptyBatch(t *testing.T) {
	t.Parallel()
	c, _ := New("http://example.com")
	res := c.AddUsers(context.Background(), nil)
	if res.Total != 0 || !res.OK() {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestIsTenantAccount(t *testing.T) {
	t.Parallel()
	cases := []struct {
		u    User
		want bool
	}{
		{User{Email: "eureka-h1@eurekanet.com", IsTenant: true}, true},
		{User{Email: "eureka-h1@eurekanet.com", IsTenant: true, IsStaff: true}, false},
		{User{Email: "eureka-h1@eurekanet.com"}, false},
		{User{Email: "someone@gmail.com", IsTenant: true}, false},
	}
	for _, tc := range cases {
		if got := IsTenantAccount(tc.u, "eurekanet.com"); got != tc.want {
			t.Fatalf("IsTenantAccount(%+v)=%v want %v", tc.u, got, tc.want)
		}
	}
}
