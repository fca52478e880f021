package types

import "github.com/go-openapi/strfmt"

// ------------------------------
// Request Types
// ------------------------------
//
// Pointer fields are sent as JSON null when unset, matching what the API
// expects for optional references. Fields whose server-side default is not
// the Go zero value are filled by ApplyDefaults before validation.

const (
	DefaultColor          = "#808080"
	DefaultIcon           = "settings"
	DefaultUnitStatus     = "AVAILABLE"
	DefaultMonthlyRent    = "65000"
	DefaultPriority       = "NORMAL"
	DefaultContactType    = "OTHER"
	DefaultContactRanking = 2
)

// Ptr returns a pointer to v. Handy for optional request fields.
func Ptr[T any](v T) *T { return &v }

// Credentials holds the login payload for the JWT create endpoint.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest registers an account.
type CreateUserRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RePassword string `json:"re_password"`
}

// ApplyDefaults mirrors the password into the confirmation field.
func (r *CreateUserRequest) ApplyDefaults() {
	if r.RePassword == "" {
		r.RePassword = r.Password
	}
}

// CreateBuildingRequest holds parameters for a new building
type CreateBuildingRequest struct {
	Name             string   `json:"name" validate:"required"`
	Code             string   `json:"code"`
	Address          string   `json:"address"`
	MainImage        *string  `json:"main_image"`
	TotalAreaM2      *float64 `json:"total_area_m2"`
	FloorsCount      int      `json:"floors_count"`
	ConstructionYear *int     `json:"construction_year"`
	Manager          *string  `json:"manager"`
	IsActive         *bool    `json:"is_active"`
}

func (r *CreateBuildingRequest) ApplyDefaults() {
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
}

// CreateFloorRequest holds parameters for a new floor. Number is a pointer
// because the ground floor (0) is valid and only absence is an error.
type CreateFloorRequest struct {
	Building     string   `json:"building" validate:"required"`
	Number       *int     `json:"number" validate:"required"`
	ChemicalCode string   `json:"chemical_code" validate:"required"`
	Name         string   `json:"name"`
	AreaM2       *float64 `json:"area_m2"`
	FloorPlan    *string  `json:"floor_plan"`
	IsActive     *bool    `json:"is_active"`
}

func (r *CreateFloorRequest) ApplyDefaults() {
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
}

// CreateUnitTypeRequest holds parameters for a new unit type
type CreateUnitTypeRequest struct {
	Name         string  `json:"name" validate:"required"`
	Code         string  `json:"code" validate:"required"`
	Description  string  `json:"description"`
	DefaultImage *string `json:"default_image"`
	IsComposite  bool    `json:"is_composite"`
	IsRentable   *bool   `json:"is_rentable"`
	ColorDisplay string  `json:"color_display"`
	SortOrder    int     `json:"sort_order"`
	IsActive     *bool   `json:"is_active"`
}

func (r *CreateUnitTypeRequest) ApplyDefaults() {
	if r.IsRentable == nil {
		r.IsRentable = Ptr(true)
	}
	if r.ColorDisplay == "" {
		r.ColorDisplay = DefaultColor
	}
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
}

// CreateUnitRequest holds parameters for a new unit
type CreateUnitRequest struct {
	Floor               string       `json:"floor" validate:"required"`
	UnitType            string       `json:"unit_type" validate:"required"`
	Parent              *string      `json:"parent"`
	Identifier          string       `json:"identifier" validate:"required"`
	Name                *string      `json:"name"`
	AreaM2              *float64     `json:"area_m2"`
	CurrentStatus       string       `json:"current_status"`
	MonthlyRent         string       `json:"monthly_rent"`
	CurrentOccupant     *string      `json:"current_occupant"`
	OccupationStartDate *strfmt.Date `json:"occupation_start_date"`
	IsActive            *bool        `json:"is_active"`
}

func (r *CreateUnitRequest) ApplyDefaults() {
	if r.CurrentStatus == "" {
		r.CurrentStatus = DefaultUnitStatus
	}
	if r.MonthlyRent == "" {
		r.MonthlyRent = DefaultMonthlyRent
	}
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
}

// CreateTenantRequest registers an existing user as a tenant.
type CreateTenantRequest struct {
	UserID                string       `json:"user_id" validate:"required"`
	CurrentUnitID         *string      `json:"current_unit_id"`
	MoveInDate            *strfmt.Date `json:"move_in_date"`
	MoveOutDate           *strfmt.Date `json:"move_out_date"`
	EmergencyContactName  *string      `json:"emergency_contact_name"`
	EmergencyContactPhone *string      `json:"emergency_contact_phone"`
	Notes                 string       `json:"notes"`
}

// ApplyDefaults is a no-op; every optional tenant field defaults to null or "".
func (r *CreateTenantRequest) ApplyDefaults() {}

// CreateOperationCategoryRequest holds parameters for a new operation category
type CreateOperationCategoryRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ColorCode   string `json:"color_code"`
	IconName    string `json:"icon_name"`
	SortOrder   int    `json:"sort_order"`
	IsActive    *bool  `json:"is_active"`
}

func (r *CreateOperationCategoryRequest) ApplyDefaults() {
	if r.ColorCode == "" {
		r.ColorCode = DefaultColor
	}
	if r.IconName == "" {
		r.IconName = DefaultIcon
	}
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
}

// CreateOperationTypeRequest holds parameters for a new operation type
type CreateOperationTypeRequest struct {
	Name             string         `json:"name" validate:"required"`
	Code             string         `json:"code" validate:"required"`
	CategoryID       string         `json:"category_id" validate:"required"`
	Description      string         `json:"description"`
	RequiresApproval bool           `json:"requires_approval"`
	AutoAssignRules  map[string]any `json:"auto_assign_rules"`
	DefaultPriority  string         `json:"default_priority"`
	SLAHours         *int           `json:"sla_hours"`
	ColorCode        string         `json:"color_code"`
	IconName         string         `json:"icon_name"`
	DefaultIcon      *string        `json:"default_icon"`
	IsActive         *bool          `json:"is_active"`
}

func (r *CreateOperationTypeRequest) ApplyDefaults() {
	if r.AutoAssignRules == nil {
		r.AutoAssignRules = map[string]any{}
	}
	if r.DefaultPriority == "" {
		r.DefaultPriority = DefaultPriority
	}
	if r.ColorCode == "" {
		r.ColorCode = DefaultColor
	}
	if r.IconName == "" {
		r.IconName = DefaultIcon
	}
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
}

// CreateContactRequest holds parameters for a new contact
type CreateContactRequest struct {
	FirstName            string   `json:"first_name" validate:"required"`
	LastName             string   `json:"last_name" validate:"required"`
	PhoneNumber          string   `json:"phone_number" validate:"required"`
	Type                 string   `json:"type"`
	Organization         string   `json:"organization"`
	Position             string   `json:"position"`
	Department           string   `json:"department"`
	PhoneNumberSecondary *string  `json:"phone_number_secondary"`
	WhatsappNumber       *string  `json:"whatsapp_number"`
	Email                *string  `json:"email"`
	Address              string   `json:"address"`
	AvailabilityInfo     string   `json:"availability_info"`
	Priority             *int     `json:"priority"`
	IsPublic             *bool    `json:"is_public"`
	IsEmergencyContact   bool     `json:"is_emergency_contact"`
	IsActive             *bool    `json:"is_active"`
	Buildings            []string `json:"buildings"`
	Notes                string   `json:"notes"`
	DisplayOrder         int      `json:"display_order"`
}

func (r *CreateContactRequest) ApplyDefaults() {
	if r.Type == "" {
		r.Type = DefaultContactType
	}
	if r.Priority == nil {
		r.Priority = Ptr(DefaultContactRanking)
	}
	if r.IsPublic == nil {
		r.IsPublic = Ptr(true)
	}
	if r.IsActive == nil {
		r.IsActive = Ptr(true)
	}
	if r.Buildings == nil {
		r.Buildings = []string{}
	}
}
