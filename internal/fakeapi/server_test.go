package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t     *testing.T
	srv   *Server
	http  *httptest.Server
	token string
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	s := New(opts)
	hs := httptest.NewServer(s.Handler())
	t.Cleanup(hs.Close)
	return &harness{t: t, srv: s, http: hs}
}

func (h *harness) do(method, path string, body any) (int, map[string]any) {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.http.URL+path, &buf)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := h.http.Client().Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (h *harness) login() {
	h.t.Helper()
	code, out := h.do(http.MethodPost, "/api/auth/jwt/create/", map[string]string{"email": DefaultAdminEmail, "password": DefaultAdminPassword})
	require.Equal(h.t, http.StatusOK, code, out)
	h.token = out["access"].(string)
	require.NotEmpty(h.t, out["refresh"])
}

func TestLogin(t *testing.T) {
	h := newHarness(t, Options{})

	code, out := h.do(http.MethodPost, "/api/auth/jwt/create/", map[string]string{"email": DefaultAdminEmail, "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No active account found with the given credentials", out["detail"])

	code, out = h.do(http.MethodPost, "/api/auth/jwt/create/", map[string]string{"email": DefaultAdminEmail})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out, "password")

	h.login()
	code, out = h.do(http.MethodGet, "/api/auth/users/me/", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, DefaultAdminEmail, out["email"])
	assert.Equal(t, true, out["is_staff"])
	assert.NotContains(t, out, "password")
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	h := newHarness(t, Options{})
	code, out := h.do(http.MethodGet, "/api/patrimoine/buildings/", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication credentials were not provided.", out["detail"])

	h.token = "garbage"
	code, _ = h.do(http.MethodPost, "/api/patrimoine/buildings/", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestExpiredAccessTokenRejectedAndRefreshed(t *testing.T) {
	h := newHarness(t, Options{AccessTTL: time.Minute})
	now := time.Now()
	h.srv.setClock(func() time.Time { return now })

	code, pair := h.do(http.MethodPost, "/api/auth/jwt/create/", map[string]string{"email": DefaultAdminEmail, "password": DefaultAdminPassword})
	require.Equal(t, http.StatusOK, code)
	h.token = pair["access"].(string)

	h.srv.setClock(func() time.Time { return now.Add(2 * time.Minute) })
	code, _ = h.do(http.MethodGet, "/api/auth/users/me/", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, out := h.do(http.MethodPost, "/api/auth/jwt/refresh/", map[string]string{"refresh": pair["refresh"].(string)})
	require.Equal(t, http.StatusOK, code)
	h.token = out["access"].(string)
	code, _ = h.do(http.MethodGet, "/api/auth/users/me/", nil)
	assert.Equal(t, http.StatusOK, code)

	// an access token is not accepted as a refresh token
	code, _ = h.do(http.MethodPost, "/api/auth/jwt/refresh/", map[string]string{"refresh": h.token})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRegisterUser(t *testing.T) {
	h := newHarness(t, Options{})
	user := map[string]any{"email": "eureka-h1@eurekanet.com", "password": "pw", "re_password": "pw", "first_name": "Awa"}

	code, out := h.do(http.MethodPost, "/api/auth/users/", user)
	require.Equal(t, http.StatusCreated, code, out)
	assert.NotEmpty(t, out["id"])
	assert.Equal(t, true, out["is_tenant"])
	assert.NotContains(t, out, "password")

	code, out = h.do(http.MethodPost, "/api/auth/users/", user)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, []any{"user with this email already exists."}, out["email"])

	code, out = h.do(http.MethodPost, "/api/auth/users/", map[string]any{"email": "x@y.z", "password": "a", "re_password": "b"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out, "non_field_errors")

	// new accounts can log in
	code, _ = h.do(http.MethodPost, "/api/auth/jwt/create/", map[string]string{"email": "eureka-h1@eurekanet.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, h.srv.Count("users"))
}

func TestCreateValidatesRequiredAndReferences(t *testing.T) {
	h := newHarness(t, Options{})
	h.login()

	code, out := h.do(http.MethodPost, "/api/patrimoine/floors/", map[string]any{"name": "RDC"})
	require.Equal(t, http.StatusBadRequest, code)
	for _, f := range []string{"building", "number", "chemical_code"} {
		assert.Equal(t, []any{"This field is required."}, out[f], f)
	}

	code, out = h.do(http.MethodPost, "/api/patrimoine/floors/", map[string]any{"building": "nope", "number": 0, "chemical_code": "H"})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out["building"].([]any)[0], "object does not exist")

	code, b := h.do(http.MethodPost, "/api/patrimoine/buildings/", map[string]any{"name": "Eureka", "code": "ERK"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, b["is_active"])

	floor := map[string]any{"building": b["id"], "number": 0, "chemical_code": "H"}
	code, _ = h.do(http.MethodPost, "/api/patrimoine/floors/", floor)
	require.Equal(t, http.StatusCreated, code)
	code, out = h.do(http.MethodPost, "/api/patrimoine/floors/", floor)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, out, "non_field_errors")
}

func TestListSearchFilterAndPagination(t *testing.T) {
	h := newHarness(t, Options{PageSize: 2})
	h.login()

	for _, c := range []string{"SECURITE", "HYDRIQUE", "WIFI"} {
		code, _ := h.do(http.MethodPost, "/api/operations/categories/", map[string]any{"code": c, "name": c})
		require.Equal(t, http.StatusCreated, code)
	}

	code, out := h.do(http.MethodGet, "/api/operations/categories/", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 3, out["count"])
	assert.Len(t, out["results"], 2)
	assert.Contains(t, out["next"], "page=2")
	assert.Nil(t, out["previous"])

	code, out = h.do(http.MethodGet, "/api/operations/categories/?page=2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, out["results"], 1)
	assert.Nil(t, out["next"])
	assert.NotNil(t, out["previous"])

	code, _ = h.do(http.MethodGet, "/api/operations/categories/?page=3", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, out = h.do(http.MethodGet, "/api/operations/categories/?search=wifi", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, out["count"])

	code, out = h.do(http.MethodGet, "/api/operations/categories/?page_size=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, out["results"], 3)
}

func TestLookup(t *testing.T) {
	s := New(Options{AdminEmail: "boss@example.com"})
	u, ok := s.Lookup("users", "email", "boss@example.com")
	require.True(t, ok)
	assert.NotContains(t, u, "password")
	_, ok = s.Lookup("nope", "email", "x")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count("nope"))
}

func TestFloorsListedInNumericOrder(t *testing.T) {
	h := newHarness(t, Options{})
	h.login()

	code, b := h.do(http.MethodPost, "/api/patrimoine/buildings/", map[string]any{"name": "Eureka"})
	require.Equal(t, http.StatusCreated, code)
	for _, n := range []int{10, 2, 0} {
		code, _ := h.do(http.MethodPost, "/api/patrimoine/floors/", map[string]any{"building": b["id"], "number": n, "chemical_code": "X"})
		require.Equal(t, http.StatusCreated, code)
	}

	code, out := h.do(http.MethodGet, "/api/patrimoine/floors/", nil)
	require.Equal(t, http.StatusOK, code)
	var numbers []float64
	for _, r := range out["results"].([]any) {
		numbers = append(numbers, r.(map[string]any)["number"].(float64))
	}
	assert.Equal(t, []float64{0, 2, 10}, numbers)
}
