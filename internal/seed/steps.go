package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/eureka-residences/erkseed/client"
)

// Step is one named unit of seeding work.
type Step struct {
	Name        string
	Description string
	Default     bool // part of DefaultOrder; otherwise runs only when named
	run         func(s *Seeder, ctx context.Context) StepResult
}

var catalog = []Step{
	{Name: "users", Description: "register tenant accounts from the accounts spreadsheet", Default: true, run: (*Seeder).seedUsers},
	{Name: "buildings", Description: "create the building", Default: true, run: (*Seeder).seedBuildings},
	{Name: "floors", Description: "create the floors of the building", Default: true, run: (*Seeder).seedFloors},
	{Name: "unit-types", Description: "create the unit types", Default: true, run: (*Seeder).seedUnitTypes},
	{Name: "units", Description: "create one occupied room per tenant account", Default: true, run: (*Seeder).seedUnits},
	{Name: "common-areas", Description: "create corridors, stairwells, technical rooms and wifi points", run: (*Seeder).seedCommonAreas},
	{Name: "operation-categories", Description: "create the operation categories", Default: true, run: (*Seeder).seedOperationCategories},
	{Name: "operation-types", Description: "create a SIGNALEMENT type per operation category", Default: true, run: (*Seeder).seedOperationTypes},
	{Name: "contacts", Description: "create staff and emergency contacts", Default: true, run: (*Seeder).seedContacts},
	{Name: "tenants", Description: "register every tenant account as tenant", Default: true, run: (*Seeder).seedTenants},
}

// Steps returns every step in catalog order.
func Steps() []Step {
	out := make([]Step, len(catalog))
	copy(out, catalog)
	return out
}

// StepNames returns the name of every step in catalog order.
func StepNames() []string {
	names := make([]string, len(catalog))
	for i, st := range catalog {
		names[i] = st.Name
	}
	return names
}

// DefaultOrder is the order --all runs: every Default step.
func DefaultOrder() []string {
	var names []string
	for _, st := range catalog {
		if st.Default {
			names = append(names, st.Name)
		}
	}
	return names
}

// Lookup finds a step by name.
func Lookup(name string) (Step, bool) {
	for _, st := range catalog {
		if st.Name == name {
			return st, true
		}
	}
	return Step{}, false
}

// allCreated fails the step unless every item of the batch was created.
func allCreated(res client.BatchResult) StepResult {
	out := StepResult{Batch: res}
	if !res.OK() {
		out.Err = fmt.Errorf("%d of %d %s not created", res.Failed(), res.Total, res.Kind)
	}
	return out
}

func lookupFailed(err error) StepResult { return StepResult{Err: err} }

func (s *Seeder) seedUsers(ctx context.Context) StepResult {
	accounts, err := LoadAccounts(s.opts.AccountsFile, s.opts.Columns)
	if err != nil {
		return lookupFailed(err)
	}
	reqs := make([]client.CreateUserRequest, 0, len(accounts))
	for _, a := range accounts {
		reqs = append(reqs, a.UserRequest(s.opts.AccountDomain))
	}
	res := s.api.AddUsers(ctx, reqs)

	// One registered account is enough: re-runs meet existing emails.
	out := StepResult{Batch: res}
	if res.Succeeded == 0 {
		out.Err = fmt.Errorf("no account created out of %d", res.Total)
	}
	return out
}

func (s *Seeder) seedBuildings(ctx context.Context) StepResult {
	return allCreated(s.api.AddBuildings(ctx, []client.CreateBuildingRequest{s.opts.Dataset.Building}))
}

func (s *Seeder) seedFloors(ctx context.Context) StepResult {
	b, err := s.findBuilding(ctx)
	if err != nil {
		return lookupFailed(err)
	}
	reqs := make([]client.CreateFloorRequest, 0, len(s.opts.Dataset.Floors))
	for _, f := range s.opts.Dataset.Floors {
		reqs = append(reqs, client.CreateFloorRequest{
			Building:     b.ID,
			Number:       client.Ptr(f.Number),
			ChemicalCode: f.ChemicalCode,
			Name:         f.Name,
		})
	}
	return allCreated(s.api.AddFloors(ctx, reqs))
}

func (s *Seeder) seedUnitTypes(ctx context.Context) StepResult {
	return allCreated(s.api.AddUnitTypes(ctx, s.opts.Dataset.UnitTypes))
}

func (s *Seeder) seedUnits(ctx context.Context) StepResult {
	users, err := s.tenantUsers(ctx)
	if err != nil {
		return lookupFailed(err)
	}
	b, err := s.findBuilding(ctx)
	if err != nil {
		return lookupFailed(err)
	}
	floors, err := s.floorsByNumber(ctx, b.ID)
	if err != nil {
		return lookupFailed(err)
	}
	room, err := s.unitTypeByCode(ctx, UnitTypeRoom)
	if err != nil {
		return lookupFailed(err)
	}

	var (
		reqs    []client.CreateUnitRequest
		skipped []client.BatchFailure
	)
	for i, u := range users {
		r, err := RoomFromEmail(u.Email, s.opts.Dataset)
		if err == nil {
			if f, ok := floors[r.FloorNumber]; ok {
				reqs = append(reqs, TenantUnit(u, r, f.ID, room.ID))
				continue
			}
			err = fmt.Errorf("floor %d of building %s not found; run the floors step first", r.FloorNumber, b.Name)
		}
		log.Warn().Err(err).Str("email", u.Email).Msg("no room for tenant account")
		skipped = append(skipped, client.BatchFailure{Index: i, Key: u.Email, Err: err})
	}

	res := s.api.AddUnits(ctx, reqs)
	res.Total += len(skipped)
	res.Failures = append(res.Failures, skipped...)
	return allCreated(res)
}

func (s *Seeder) seedCommonAreas(ctx context.Context) StepResult {
	b, err := s.findBuilding(ctx)
	if err != nil {
		return lookupFailed(err)
	}
	floors, err := s.floorsByNumber(ctx, b.ID)
	if err != nil {
		return lookupFailed(err)
	}

	typeIDs := map[string]string{}
	reqs := make([]client.CreateUnitRequest, 0, len(s.opts.Dataset.CommonAreas))
	for _, area := range s.opts.Dataset.CommonAreas {
		f, ok := floors[area.FloorNumber]
		if !ok {
			return lookupFailed(fmt.Errorf("floor %d of building %s not found; run the floors step first", area.FloorNumber, b.Name))
		}
		id, ok := typeIDs[area.UnitTypeCode]
		if !ok {
			ut, err := s.unitTypeByCode(ctx, area.UnitTypeCode)
			if err != nil {
				return lookupFailed(err)
			}
			id = ut.ID
			typeIDs[area.UnitTypeCode] = id
		}
		reqs = append(reqs, client.CreateUnitRequest{
			Floor:         f.ID,
			UnitType:      id,
			Identifier:    area.Identifier,
			Name:          client.Ptr(area.Name),
			CurrentStatus: commonAreaStatus,
		})
	}
	return allCreated(s.api.AddUnits(ctx, reqs))
}

func (s *Seeder) seedOperationCategories(ctx context.Context) StepResult {
	return allCreated(s.api.AddOperationCategories(ctx, s.opts.Dataset.OperationCategories))
}

func (s *Seeder) seedOperationTypes(ctx context.Context) StepResult {
	categories, err := s.api.ListOperationCategories(ctx, nil)
	if err != nil {
		return lookupFailed(fmt.Errorf("list operation categories: %w", err))
	}
	if len(categories) == 0 {
		return lookupFailed(fmt.Errorf("no operation category found; run the operation-categories step first"))
	}
	reqs := make([]client.CreateOperationTypeRequest, 0, len(categories))
	for _, c := range categories {
		reqs = append(reqs, client.CreateOperationTypeRequest{
			Name:       OperationTypeReport,
			Code:       "SIG-" + c.Code,
			CategoryID: c.ID,
			SLAHours:   client.Ptr(operationTypeSLAHours),
			ColorCode:  operationTypeColor,
			IsActive:   client.Ptr(true),
		})
	}
	return allCreated(s.api.AddOperationTypes(ctx, reqs))
}

func (s *Seeder) seedContacts(ctx context.Context) StepResult {
	return allCreated(s.api.AddContacts(ctx, s.opts.Dataset.Contacts))
}

func (s *Seeder) seedTenants(ctx context.Context) StepResult {
	users, err := s.tenantUsers(ctx)
	if err != nil {
		return lookupFailed(err)
	}
	reqs := make([]client.CreateTenantRequest, 0, len(users))
	for _, u := range users {
		reqs = append(reqs, client.CreateTenantRequest{UserID: u.ID})
	}
	return allCreated(s.api.AddTenants(ctx, reqs))
}
