package fakeapi

import (
	"fmt"

	"github.com/eureka-residences/erkseed/internal/fakeapi/respond"
)

// resource describes one REST collection of the fake API.
type resource struct {
	name     string // collection key, also used in error messages
	singular string
	path     string
	required []string
	unique   []string
	refs     map[string]string // field -> collection whose id it must hold
	defaults map[string]any
	filters  []string // query parameters matched exactly
	search   []string // fields scanned by ?search=
	orderBy  string
	hidden   []string // never returned (passwords)
	validate func(s *Server, rec record, errs respond.FieldErrors)
	prepare  func(rec record) // runs after validation, before storage
}

const (
	resUsers      = "users"
	resBuildings  = "buildings"
	resFloors     = "floors"
	resUnitTypes  = "unit-types"
	resUnits      = "units"
	resTenants    = "tenants"
	resCategories = "operation-categories"
	resOpTypes    = "operation-types"
	resContacts   = "contacts"
)

func resources() []resource {
	return []resource{
		{
			name: resUsers, singular: "user", path: "/api/auth/users/",
			required: []string{"email", "password"},
			unique:   []string{"email"},
			defaults: map[string]any{"first_name": "", "last_name": "", "is_tenant": true, "is_staff": false, "is_active": true},
			search:   []string{"email", "first_name", "last_name"},
			hidden:   []string{"password", "re_password"},
			validate: func(_ *Server, rec record, errs respond.FieldErrors) {
				if rec.str("re_password") != rec.str("password") {
					errs.Add("non_field_errors", "The two password fields didn't match.")
				}
			},
			prepare: func(rec record) { delete(rec, "re_password") },
		},
		{
			name: resBuildings, singular: "building", path: "/api/patrimoine/buildings/",
			required: []string{"name"},
			unique:   []string{"name"},
			defaults: map[string]any{"code": "", "address": "", "floors_count": 0, "is_active": true},
			search:   []string{"name", "code", "address"},
			filters:  []string{"code"},
		},
		{
			name: resFloors, singular: "floor", path: "/api/patrimoine/floors/",
			required: []string{"building", "number", "chemical_code"},
			refs:     map[string]string{"building": resBuildings},
			defaults: map[string]any{"name": "", "is_active": true},
			filters:  []string{"building", "number"},
			search:   []string{"name", "chemical_code"},
			orderBy:  "number",
			validate: func(s *Server, rec record, errs respond.FieldErrors) {
				dups := s.coll(resFloors).query(map[string]string{"building": rec.str("building"), "number": rec.str("number")}, "", nil, "")
				if len(dups) > 0 {
					errs.Add("non_field_errors", "The fields building, number must make a unique set.")
				}
			},
		},
		{
			name: resUnitTypes, singular: "unit type", path: "/api/patrimoine/unit-types/",
			required: []string{"name", "code"},
			unique:   []string{"code"},
			defaults: map[string]any{"is_composite": false, "is_rentable": true, "color_display": "#808080", "is_active": true},
			search:   []string{"name", "code"},
		},
		{
			name: resUnits, singular: "unit", path: "/api/patrimoine/units/",
			required: []string{"floor", "unit_type", "identifier"},
			unique:   []string{"identifier"},
			refs:     map[string]string{"floor": resFloors, "unit_type": resUnitTypes, "current_occupant": resUsers, "parent": resUnits},
			defaults: map[string]any{"current_status": "AVAILABLE", "is_active": true},
			filters:  []string{"floor", "unit_type", "current_status"},
			search:   []string{"identifier", "name"},
		},
		{
			name: resTenants, singular: "tenant", path: "/api/rental/tenants/",
			required: []string{"user_id"},
			unique:   []string{"user_id"},
			refs:     map[string]string{"user_id": resUsers, "current_unit_id": resUnits},
			defaults: map[string]any{"notes": ""},
			search:   []string{"notes"},
		},
		{
			name: resCategories, singular: "operation category", path: "/api/operations/categories/",
			required: []string{"code", "name"},
			unique:   []string{"code"},
			defaults: map[string]any{"color_code": "#808080", "icon_name": "settings", "is_active": true},
			search:   []string{"code", "name"},
		},
		{
			name: resOpTypes, singular: "operation type", path: "/api/operations/types/",
			required: []string{"name", "code", "category_id"},
			unique:   []string{"code"},
			refs:     map[string]string{"category_id": resCategories},
			defaults: map[string]any{"default_priority": "NORMAL", "is_active": true},
			filters:  []string{"category_id"},
			search:   []string{"code", "name"},
		},
		{
			name: resContacts, singular: "contact", path: "/api/contacts/",
			required: []string{"first_name", "last_name", "phone_number"},
			defaults: map[string]any{"type": "OTHER", "is_public": true, "is_emergency_contact": false},
			filters:  []string{"type"},
			search:   []string{"first_name", "last_name", "organization", "position"},
		},
	}
}

// check validates rec against the resource rules, collecting every problem.
func (s *Server) check(res resource, rec record) respond.FieldErrors {
	errs := respond.FieldErrors{}
	for _, f := range res.required {
		if v, ok := rec[f]; !ok || v == nil || v == "" {
			errs.Add(f, "This field is required.")
		}
	}
	for _, f := range res.unique {
		v := rec.str(f)
		if v == "" {
			continue
		}
		if _, dup := s.coll(res.name).find(f, v); dup {
			errs.Add(f, fmt.Sprintf("%s with this %s already exists.", res.singular, f))
		}
	}
	for f, target := range res.refs {
		id := rec.str(f)
		if id == "" {
			continue
		}
		if _, ok := s.coll(target).get(id); !ok {
			errs.Add(f, fmt.Sprintf("Invalid pk %q - object does not exist.", id))
		}
	}
	if res.validate != nil && len(errs) == 0 {
		res.validate(s, rec, errs)
	}
	return errs
}

// present strips hidden fields before a record leaves the server.
func present(res resource, rec record) record {
	for _, f := range res.hidden {
		delete(rec, f)
	}
	return rec
}
