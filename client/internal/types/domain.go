package types

// ------------------------------
// Core Domain Entities
// ------------------------------
//
// These mirror what the remote API returns. Only the fields the seeder reads
// are decoded; unknown fields are ignored.

// User represents an account on the remote service.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsTenant  bool   `json:"is_tenant"`
	IsStaff   bool   `json:"is_staff"`
	IsActive  bool   `json:"is_active"`
}

// FullName returns "first last" trimmed of empty parts.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Building represents a managed building
type Building struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	Address          string `json:"address"`
	FloorsCount      int    `json:"floors_count"`
	ConstructionYear *int   `json:"construction_year"`
	IsActive         bool   `json:"is_active"`
}

// Floor represents one level of a building
type Floor struct {
	ID           string `json:"id"`
	Building     string `json:"building"`
	Number       int    `json:"number"`
	ChemicalCode string `json:"chemical_code"`
	Name         string `json:"name"`
	IsActive     bool   `json:"is_active"`
}

// UnitType classifies units (rooms, corridors, technical rooms...)
type UnitType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	IsComposite  bool   `json:"is_composite"`
	IsRentable   bool   `json:"is_rentable"`
	ColorDisplay string `json:"color_display"`
	IsActive     bool   `json:"is_active"`
}

// Unit represents a managed space on a floor
type Unit struct {
	ID              string  `json:"id"`
	Floor           string  `json:"floor"`
	UnitType        string  `json:"unit_type"`
	Identifier      string  `json:"identifier"`
	Name            *string `json:"name"`
	CurrentStatus   string  `json:"current_status"`
	CurrentOccupant *string `json:"current_occupant"`
}

// Tenant links a user to the rental module. The server keys tenants by user.
type Tenant struct {
	UserID        string  `json:"user_id"`
	CurrentUnitID *string `json:"current_unit_id"`
	Notes         string  `json:"notes"`
}

// OperationCategory groups operation types (security, water, electricity...)
type OperationCategory struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	ColorCode string `json:"color_code"`
	IconName  string `json:"icon_name"`
	IsActive  bool   `json:"is_active"`
}

// OperationType is a kind of intervention that can be reported
type OperationType struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	SLAHours   *int   `json:"sla_hours"`
}

// Contact is a staff or emergency phone contact shown to residents
type Contact struct {
	ID                 string `json:"id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	PhoneNumber        string `json:"phone_number"`
	Type               string `json:"type"`
	IsEmergencyContact bool   `json:"is_emergency_contact"`
}
