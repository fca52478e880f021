// Package seed creates the residence's reference data through the API
// client: an ordered list of named steps over a fixed dataset and the tenant
// accounts spreadsheet.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/eureka-residences/erkseed/client"
)

// API is the part of *client.Client the steps use.
type API interface {
	AddUsers(ctx context.Context, reqs []client.CreateUserRequest) client.BatchResult
	AddBuildings(ctx context.Context, reqs []client.CreateBuildingRequest) client.BatchResult
	AddFloors(ctx context.Context, reqs []client.CreateFloorRequest) client.BatchResult
	AddUnitTypes(ctx context.Context, reqs []client.CreateUnitTypeRequest) client.BatchResult
	AddUnits(ctx context.Context, reqs []client.CreateUnitRequest) client.BatchResult
	AddTenants(ctx context.Context, reqs []client.CreateTenantRequest) client.BatchResult
	AddOperationCategories(ctx context.Context, reqs []client.CreateOperationCategoryRequest) client.BatchResult
	AddOperationTypes(ctx context.Context, reqs []client.CreateOperationTypeRequest) client.BatchResult
	AddContacts(ctx context.Context, reqs []client.CreateContactRequest) client.BatchResult

	ListBuildings(ctx context.Context, params map[string]string) ([]client.Building, error)
	ListFloors(ctx context.Context, params map[string]string) ([]client.Floor, error)
	ListUnitTypes(ctx context.Context, params map[string]string) ([]client.UnitType, error)
	ListOperationCategories(ctx context.Context, params map[string]string) ([]client.OperationCategory, error)
	ListTenantUsers(ctx context.Context, params map[string]string, accountDomain string) ([]client.User, error)
}

var _ API = (*client.Client)(nil)

// ErrStepsFailed is wrapped by Run when at least one step failed.
var ErrStepsFailed = errors.New("seed steps failed")

// Options configures a Seeder.
type Options struct {
	AccountDomain  string
	AccountsFile   string
	Columns        Columns
	BuildingSearch string
	Dataset        Dataset
	// UserParams are sent when listing users (e.g. page, page_size).
	UserParams map[string]string
	// FailFast stops the run at the first failed step.
	FailFast bool
}

// Seeder runs steps against one API.
type Seeder struct {
	api  API
	opts Options
}

// New returns a Seeder; empty options take the Eureka defaults.
func New(api API, opts Options) *Seeder {
	if opts.AccountDomain == "" {
		opts.AccountDomain = "eurekanet.com"
	}
	if opts.AccountsFile == "" {
		opts.AccountsFile = "COMPTES_EUREKANET.xlsx"
	}
	if opts.Columns == (Columns{}) {
		opts.Columns = DefaultColumns
	}
	if opts.Dataset.Building.Name == "" {
		opts.Dataset = DefaultDataset()
	}
	if opts.BuildingSearch == "" {
		opts.BuildingSearch = opts.Dataset.Building.Name
	}
	return &Seeder{api: api, opts: opts}
}

// Run executes the named steps one after the other. Unknown names are
// rejected before anything is sent. A failed step is recorded and the run
// moves on, unless FailFast is set; the returned error wraps ErrStepsFailed
// when any step failed, or the context error when the run was cut short.
func (s *Seeder) Run(ctx context.Context, names []string) (*Report, error) {
	steps := make([]Step, 0, len(names))
	for _, n := range names {
		st, ok := Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown step %q (known: %s)", n, strings.Join(StepNames(), ", "))
		}
		steps = append(steps, st)
	}

	report := &Report{}
	stop := false
	for _, st := range steps {
		if stop || ctx.Err() != nil {
			report.Results = append(report.Results, StepResult{Name: st.Name, Skipped: true})
			stepRunsTotal.WithLabelValues(st.Name, "skipped").Inc()
			continue
		}

		log.Info().Str("step", st.Name).Msg("step started")
		start := time.Now()
		res := st.run(s, ctx)
		res.Name = st.Name
		res.Duration = time.Since(start)
		stepDuration.WithLabelValues(st.Name).Observe(res.Duration.Seconds())
		report.Results = append(report.Results, res)

		if res.Err != nil {
			stepRunsTotal.WithLabelValues(st.Name, "failed").Inc()
			log.Error().Err(res.Err).Str("step", st.Name).Dur("took", res.Duration).Msg("step failed")
			stop = s.opts.FailFast
			continue
		}
		stepRunsTotal.WithLabelValues(st.Name, "succeeded").Inc()
		log.Info().Str("step", st.Name).Int("created", res.Batch.Succeeded).Dur("took", res.Duration).Msg("step succeeded")
	}

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("seed run interrupted: %w", err)
	}
	if failed := report.Failed(); len(failed) > 0 {
		return report, fmt.Errorf("%w: %s", ErrStepsFailed, strings.Join(failed, ", "))
	}
	return report, nil
}

// --------------------------------------------------------------------
// Lookups shared by the steps
// --------------------------------------------------------------------

func (s *Seeder) findBuilding(ctx context.Context) (client.Building, error) {
	found, err := s.api.ListBuildings(ctx, map[string]string{"search": s.opts.BuildingSearch})
	if err != nil {
		return client.Building{}, fmt.Errorf("look up building %q: %w", s.opts.BuildingSearch, err)
	}
	if len(found) == 0 {
		return client.Building{}, fmt.Errorf("no building matches %q; run the buildings step first", s.opts.BuildingSearch)
	}
	return found[0], nil
}

// floorsByNumber lists the floors of building keyed by number.
func (s *Seeder) floorsByNumber(ctx context.Context, buildingID string) (map[int]client.Floor, error) {
	floors, err := s.api.ListFloors(ctx, map[string]string{"building": buildingID})
	if err != nil {
		return nil, fmt.Errorf("list floors of building %s: %w", buildingID, err)
	}
	out := make(map[int]client.Floor, len(floors))
	for _, f := range floors {
		out[f.Number] = f
	}
	return out, nil
}

func (s *Seeder) unitTypeByCode(ctx context.Context, code string) (client.UnitType, error) {
	found, err := s.api.ListUnitTypes(ctx, map[string]string{"search": code})
	if err != nil {
		return client.UnitType{}, fmt.Errorf("look up unit type %s: %w", code, err)
	}
	for _, ut := range found {
		if ut.Code == code {
			return ut, nil
		}
	}
	return client.UnitType{}, fmt.Errorf("unit type %s not found; run the unit-types step first", code)
}

func (s *Seeder) tenantUsers(ctx context.Context) ([]client.User, error) {
	users, err := s.api.ListTenantUsers(ctx, s.opts.UserParams, s.opts.AccountDomain)
	if err != nil {
		return nil, fmt.Errorf("list tenant users: %w", err)
	}
	return users, nil
}
