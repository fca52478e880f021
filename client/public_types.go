package client

import "github.com/eureka-residences/erkseed/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	Credentials                    = types.Credentials
	CreateUserRequest              = types.CreateUserRequest
	CreateBuildingRequest          = types.CreateBuildingRequest
	CreateFloorRequest             = types.CreateFloorRequest
	CreateUnitTypeRequest          = types.CreateUnitTypeRequest
	CreateUnitRequest              = types.CreateUnitRequest
	CreateTenantRequest            = types.CreateTenantRequest
	CreateOperationCategoryRequest = types.CreateOperationCategoryRequest
	CreateOperationTypeRequest     = types.CreateOperationTypeRequest
	CreateContactRequest           = types.CreateContactRequest

	// Domain entities
	User              = types.User
	Building          = types.Building
	Floor             = types.Floor
	UnitType          = types.UnitType
	Unit              = types.Unit
	Tenant            = types.Tenant
	OperationCategory = types.OperationCategory
	OperationType     = types.OperationType
	Contact           = types.Contact

	// Responses
	TokenPair = types.TokenPair
)

// Payload defaults applied before validation.
const (
	DefaultColor          = types.DefaultColor
	DefaultIcon           = types.DefaultIcon
	DefaultUnitStatus     = types.DefaultUnitStatus
	DefaultMonthlyRent    = types.DefaultMonthlyRent
	DefaultPriority       = types.DefaultPriority
	DefaultContactType    = types.DefaultContactType
	DefaultContactRanking = types.DefaultContactRanking
)

// Ptr returns a pointer to v, for the optional fields of request types.
func Ptr[T any](v T) *T { return types.Ptr(v) }
