// Package client is the SDK the seeder uses to talk to the property-management
// API: authentication, per-resource create/list calls, batch helpers and a
// run-scoped registry of the identifiers the server hands back.
//
// Calls are sequential: batch helpers issue one request at a time and keep
// going after a failed item.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eureka-residences/erkseed/client/internal/api"
	clerrors "github.com/eureka-residences/erkseed/client/internal/errors"
)

// DefaultTimeout bounds every request unless WithHTTPTimeout says otherwise.
const DefaultTimeout = 30 * time.Second

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

type Client struct {
	baseURL  string
	http     *http.Client
	tokens   *tokenStore
	registry *Registry
	retry    retryPolicy
}

// New constructs a Client for the API rooted at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q", baseURL)
	}

	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		tokens:   &tokenStore{},
		registry: NewRegistry(),
		retry:    defaultRetryPolicy(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransport()
	return c, nil
}

// wrapTransport installs, from the inside out: request metrics, the retry
// loop (only when more than one attempt is allowed) and the bearer token.
// With retries on, the HTTP timeout moves from the http.Client to each try.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	var rt http.RoundTripper = &instrumentedTransport{base: base}
	if c.retry.attempts > 1 {
		// The client timeout would span every attempt and wait; each try
		// gets the deadline instead.
		c.retry.perAttempt = c.http.Timeout
		c.http.Timeout = 0
		rt = &retryTransport{base: rt, policy: c.retry}
	}
	c.http.Transport = &authTransport{base: rt, tokens: c.tokens}
}

// BaseURL returns the API root without trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Registry returns the identifier cache filled by successful create calls.
func (c *Client) Registry() *Registry { return c.registry }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Outcome reporting
// --------------------------------------------------------------------

func (c *Client) created(operation, label, key, id string) {
	if key != "" && id != "" {
		if prev, replaced := c.registry.Swap(key, id); replaced && prev != id {
			log.Warn().Str("operation", operation).Str("key", key).Str("previous_id", prev).Str("id", id).Msg("registry key already set; previous id replaced")
		}
	}
	operationsTotal.WithLabelValues(operation, outcomeSuccess).Inc()
	log.Info().Str("operation", operation).Str("name", label).Str("id", id).Msg("created")
}

func (c *Client) listed(operation string, n int) {
	operationsTotal.WithLabelValues(operation, outcomeSuccess).Inc()
	log.Info().Str("operation", operation).Int("count", n).Msg("listed")
}

func (c *Client) failed(operation, label string, err error) {
	var (
		ce *clerrors.ClassifiedError
		ve *clerrors.ValidationError
	)
	switch {
	case errors.As(err, &ve):
		operationsTotal.WithLabelValues(operation, outcomeValidation).Inc()
		log.Warn().Str("operation", operation).Str("name", label).Strs("missing", ve.Fields).Msg("rejected before sending: required fields missing")
	case errors.As(err, &ce) && ce.StatusCode > 0:
		operationsTotal.WithLabelValues(operation, outcomeHTTPError).Inc()
		log.Error().Str("operation", operation).Str("name", label).Int("status", ce.StatusCode).Str("body", ce.Body).Msg("request failed")
	default:
		operationsTotal.WithLabelValues(operation, outcomeNetworkError).Inc()
		log.Error().Err(err).Str("operation", operation).Str("name", label).Msg("request failed")
	}
}

// --------------------------------------------------------------------
// Users - delegated to internal/api
// --------------------------------------------------------------------

// CreateUser registers an account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) error {
	const op = "create user"
	label := strings.TrimSpace(req.FirstName + " " + req.LastName)
	if err := api.CreateUser(ctx, c.http, c.baseURL, req); err != nil {
		c.failed(op, label, err)
		return err
	}
	c.created(op, label, "", "")
	return nil
}

// ListUsers returns one page of users.
func (c *Client) ListUsers(ctx context.Context, params map[string]string) ([]User, error) {
	const op = "list users"
	users, err := api.ListUsers(ctx, c.http, c.baseURL, params)
	if err != nil {
		c.failed(op, "", err)
		return nil, err
	}
	c.listed(op, len(users))
	return users, nil
}

// ListTenantUsers returns the users of one page that are tenant accounts of
// accountDomain: is_tenant set, not staff, and an email at that domain.
func (c *Client) ListTenantUsers(ctx context.Context, params map[string]string, accountDomain string) ([]User, error) {
	users, err := c.ListUsers(ctx, params)
	if err != nil {
		return nil, err
	}
	tenants := make([]User, 0, len(users))
	for _, u := range users {
		if IsTenantAccount(u, accountDomain) {
			tenants = append(tenants, u)
		}
	}
	log.Info().Int("count", len(tenants)).Str("domain", accountDomain).Msg("tenant users found")
	return tenants, nil
}

// IsTenantAccount reports whether u is a non-staff tenant with an email at
// accountDomain.
func IsTenantAccount(u User, accountDomain string) bool {
	return u.IsTenant && !u.IsStaff && strings.Contains(u.Email, "@"+accountDomain)
}

// --------------------------------------------------------------------
// Patrimoine (buildings, floors, unit types, units) - delegated to internal/api
// --------------------------------------------------------------------

// CreateBuilding creates a building; its id is registered under its name.
func (c *Client) CreateBuilding(ctx context.Context, req CreateBuildingRequest) (*Building, error) {
	const op = "create building"
	b, err := api.CreateBuilding(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, req.Name, err)
		return nil, err
	}
	c.created(op, req.Name, req.Name, b.ID)
	return b, nil
}

// ListBuildings returns one page of buildings.
func (c *Client) ListBuildings(ctx context.Context, params map[string]string) ([]Building, error) {
	const op = "list buildings"
	out, err := api.ListBuildings(ctx, c.http, c.baseURL, params)
	if err != nil {
		c.failed(op, "", err)
		return nil, err
	}
	c.listed(op, len(out))
	return out, nil
}

// CreateFloor creates a floor; its id is registered under FloorKey.
func (c *Client) CreateFloor(ctx context.Context, req CreateFloorRequest) (*Floor, error) {
	const op = "create floor"
	label := req.Name
	if label == "" && req.Number != nil {
		label = fmt.Sprintf("Étage %d", *req.Number)
	}
	f, err := api.CreateFloor(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, label, err)
		return nil, err
	}
	c.created(op, label, FloorKey(req.Building, *req.Number), f.ID)
	return f, nil
}

// ListFloors returns one page of floors.
func (c *Client) ListFloors(ctx context.Context, params map[string]string) ([]Floor, error) {
	const op = "list floors"
	out, err := api.ListFloors(ctx, c.http, c.baseURL, params)
	if err != nil {
		c.failed(op, "", err)
		return nil, err
	}
	c.listed(op, len(out))
	return out, nil
}

// CreateUnitType creates a unit type; its id is registered under its code.
func (c *Client) CreateUnitType(ctx context.Context, req CreateUnitTypeRequest) (*UnitType, error) {
	const op = "create unit type"
	ut, err := api.CreateUnitType(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, req.Name, err)
		return nil, err
	}
	c.created(op, req.Name, req.Code, ut.ID)
	return ut, nil
}

// ListUnitTypes returns one page of unit types.
func (c *Client) ListUnitTypes(ctx context.Context, params map[string]string) ([]UnitType, error) {
	const op = "list unit types"
	out, err := api.ListUnitTypes(ctx, c.http, c.baseURL, params)
	if err != nil {
		c.failed(op, "", err)
		return nil, err
	}
	c.listed(op, len(out))
	return out, nil
}

// CreateUnit creates a unit; its id is registered under its identifier.
func (c *Client) CreateUnit(ctx context.Context, req CreateUnitRequest) (*Unit, error) {
	const op = "create unit"
	u, err := api.CreateUnit(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, req.Identifier, err)
		return nil, err
	}
	c.created(op, req.Identifier, req.Identifier, u.ID)
	return u, nil
}

// --------------------------------------------------------------------
// Rental - delegated to internal/api
// --------------------------------------------------------------------

// CreateTenant registers a user as tenant.
func (c *Client) CreateTenant(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	const op = "create tenant"
	t, err := api.CreateTenant(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, req.UserID, err)
		return nil, err
	}
	c.created(op, t.UserID, "", "")
	return t, nil
}

// --------------------------------------------------------------------
// Operations - delegated to internal/api
// --------------------------------------------------------------------

// CreateOperationCategory creates a category; its id is registered under its code.
func (c *Client) CreateOperationCategory(ctx context.Context, req CreateOperationCategoryRequest) (*OperationCategory, error) {
	const op = "create operation category"
	oc, err := api.CreateOperationCategory(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, req.Name, err)
		return nil, err
	}
	c.created(op, req.Name, req.Code, oc.ID)
	return oc, nil
}

// ListOperationCategories returns one page of operation categories.
func (c *Client) ListOperationCategories(ctx context.Context, params map[string]string) ([]OperationCategory, error) {
	const op = "list operation categories"
	out, err := api.ListOperationCategories(ctx, c.http, c.baseURL, params)
	if err != nil {
		c.failed(op, "", err)
		return nil, err
	}
	c.listed(op, len(out))
	return out, nil
}

// CreateOperationType creates an operation type; its id is registered under its code.
func (c *Client) CreateOperationType(ctx context.Context, req CreateOperationTypeRequest) (*OperationType, error) {
	const op = "create operation type"
	ot, err := api.CreateOperationType(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, req.Name, err)
		return nil, err
	}
	c.created(op, req.Name, req.Code, ot.ID)
	return ot, nil
}

// --------------------------------------------------------------------
// Contacts - delegated to internal/api
// --------------------------------------------------------------------

// CreateContact creates a contact; its id is registered under ContactKey.
func (c *Client) CreateContact(ctx context.Context, req CreateContactRequest) (*Contact, error) {
	const op = "create contact"
	label := req.FirstName + " " + req.LastName
	ct, err := api.CreateContact(ctx, c.http, c.baseURL, req)
	if err != nil {
		c.failed(op, label, err)
		return nil, err
	}
	c.created(op, label, ContactKey(req.FirstName, req.LastName), ct.ID)
	return ct, nil
}
