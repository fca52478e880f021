// Package fakeapi is an in-memory stand-in for the property-management API.
// It serves the endpoints the seeder calls, with the same JWT login,
// pagination envelope and error bodies, so seeding can be rehearsed locally
// and tested end to end.
package fakeapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/eureka-residences/erkseed/internal/fakeapi/recovery"
	"github.com/eureka-residences/erkseed/internal/fakeapi/respond"
)

// Options configures a Server. Zero values take the defaults below.
type Options struct {
	AdminEmail    string
	AdminPassword string
	Secret        []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	PageSize      int
	MaxPageSize   int
}

const (
	DefaultAdminEmail    = "admin@eurekanet.com"
	DefaultAdminPassword = "admin"
	DefaultPageSize      = 100
)

func (o *Options) applyDefaults() {
	if o.AdminEmail == "" {
		o.AdminEmail = DefaultAdminEmail
	}
	if o.AdminPassword == "" {
		o.AdminPassword = DefaultAdminPassword
	}
	if len(o.Secret) == 0 {
		o.Secret = []byte("fakeapi-insecure-secret")
	}
	if o.AccessTTL <= 0 {
		o.AccessTTL = 5 * time.Minute
	}
	if o.RefreshTTL <= 0 {
		o.RefreshTTL = 24 * time.Hour
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.MaxPageSize < o.PageSize {
		o.MaxPageSize = 1000
	}
}

// Server holds every collection in memory. Safe for concurrent use.
type Server struct {
	opts  Options
	res   map[string]resource
	colls map[string]*collection

	clockMu sync.RWMutex
	clock   func() time.Time
}

// New returns a server with one staff account, the admin.
func New(opts Options) *Server {
	opts.applyDefaults()
	s := &Server{
		opts:  opts,
		clock: time.Now,
		res:   make(map[string]resource),
		colls: make(map[string]*collection),
	}
	for _, r := range resources() {
		s.res[r.name] = r
		s.colls[r.name] = newCollection()
	}
	s.coll(resUsers).insert("id", record{
		"email":      opts.AdminEmail,
		"password":   opts.AdminPassword,
		"first_name": "Admin",
		"last_name":  "",
		"is_tenant":  false,
		"is_staff":   true,
		"is_active":  true,
	})
	return s
}

func (s *Server) coll(name string) *collection { return s.colls[name] }

func (s *Server) now() time.Time {
	s.clockMu.RLock()
	defer s.clockMu.RUnlock()
	return s.clock()
}

// setClock replaces the time source used to mint and verify tokens.
func (s *Server) setClock(clock func() time.Time) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.clock = clock
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(recovery.Middleware)
	router.Use(logRequests)

	// Anonymous endpoints
	router.HandleFunc("/api/auth/jwt/create/", s.handleTokenCreate).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/jwt/refresh/", s.handleTokenRefresh).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/users/", s.createHandler(s.res[resUsers])).Methods(http.MethodPost)

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(s.requireAuth)
	protected.HandleFunc("/auth/users/me/", s.handleMe).Methods(http.MethodGet)
	for _, r := range resources() {
		sub := r.path[len("/api"):]
		if r.name != resUsers {
			protected.HandleFunc(sub, s.createHandler(r)).Methods(http.MethodPost)
		}
		protected.HandleFunc(sub, s.listHandler(r)).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.WriteNotFound(w)
	})
	return router
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Dur("took", time.Since(start)).Msg("fake api request")
	})
}

func (s *Server) createHandler(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in record
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in == nil {
			respond.WriteDetail(w, http.StatusBadRequest, "JSON parse error")
			return
		}
		for k, v := range res.defaults {
			if _, ok := in[k]; !ok {
				in[k] = v
			}
		}
		if errs := s.check(res, in); len(errs) > 0 {
			respond.WriteFieldErrors(w, errs)
			return
		}
		delete(in, "id")
		if res.prepare != nil {
			res.prepare(in)
		}
		out := s.coll(res.name).insert("id", in)
		respond.WriteJSON(w, http.StatusCreated, present(res, out))
	}
}

func (s *Server) listHandler(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filters := map[string]string{}
		for _, f := range res.filters {
			if v := q.Get(f); v != "" {
				filters[f] = v
			}
		}
		all := s.coll(res.name).query(filters, q.Get("search"), res.search, res.orderBy)

		page, size, ok := s.pageParams(q)
		if !ok {
			respond.WriteNotFound(w)
			return
		}
		start := (page - 1) * size
		if start > len(all) || (start == len(all) && page > 1) {
			respond.WriteDetail(w, http.StatusNotFound, "Invalid page.")
			return
		}
		end := min(start+size, len(all))

		results := make([]record, 0, end-start)
		for _, rec := range all[start:end] {
			results = append(results, present(res, rec))
		}
		body := respond.Page{Count: len(all), Results: results}
		if end < len(all) {
			body.Next = pageLink(r, page+1)
		}
		if page > 1 {
			body.Previous = pageLink(r, page-1)
		}
		respond.WriteJSON(w, http.StatusOK, body)
	}
}

func (s *Server) pageParams(q url.Values) (page, size int, ok bool) {
	page, size = 1, s.opts.PageSize
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, false
		}
		page = n
	}
	if v := q.Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			size = min(n, s.opts.MaxPageSize)
		}
	}
	return page, size, true
}

func pageLink(r *http.Request, page int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// Count returns the number of records in a collection ("users",
// "buildings", "floors", "unit-types", "units", "tenants",
// "operation-categories", "operation-types", "contacts").
func (s *Server) Count(collection string) int {
	c, ok := s.colls[collection]
	if !ok {
		return 0
	}
	return c.len()
}

// Lookup returns a copy of the first record of collection whose field
// equals value, with hidden fields removed.
func (s *Server) Lookup(collection, field, value string) (map[string]any, bool) {
	c, ok := s.colls[collection]
	if !ok {
		return nil, false
	}
	rec, ok := c.find(field, value)
	if !ok {
		return nil, false
	}
	return present(s.res[collection], rec), true
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("admin", s.opts.AdminEmail).Msg("fake api listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down fake api")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(ctxShutdown)
	case err := <-errCh:
		return err
	}
}
