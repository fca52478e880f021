package seed

import "github.com/eureka-residences/erkseed/client"

// Codes and fixed values of the seeded reference data.
const (
	UnitTypeStairwell     = "CAGE_ESCALIER"
	UnitTypeRoom          = "CHAMBRE"
	UnitTypeCorridor      = "COULOIR"
	UnitTypeTechnicalRoom = "LOCAL_TECHNIQUE"
	UnitTypeWifiAccess    = "POINT_ACCESS_WIFI"
	UnitTypeStudyRoom     = "SALLE_ETUDE"
	OperationTypeReport   = "SIGNALEMENT"
	operationTypeSLAHours = 72
	operationTypeColor    = "#2196F3"
	unitTypeColor         = "#2196F3"
	tenantRoomAreaM2      = 15.0
	tenantRoomStatus      = "OCCUPIED"
	commonAreaStatus      = "AVAILABLE"
)

// FloorSpec is a floor of the seeded building. The building id is resolved
// at run time.
type FloorSpec struct {
	Number       int
	ChemicalCode string
	Name         string
	Label        string // used in unit names: "RDC", "Etage 1"
}

// CommonArea is a non-rentable unit created by the common-areas step.
type CommonArea struct {
	FloorNumber  int
	UnitTypeCode string
	Identifier   string
	Name         string
}

// Dataset is the fixed reference data the steps create.
type Dataset struct {
	Building            client.CreateBuildingRequest
	Floors              []FloorSpec
	UnitTypes           []client.CreateUnitTypeRequest
	OperationCategories []client.CreateOperationCategoryRequest
	Contacts            []client.CreateContactRequest
	CommonAreas         []CommonArea
}

// FloorByNumber returns the floor spec numbered n.
func (d Dataset) FloorByNumber(n int) (FloorSpec, bool) {
	for _, f := range d.Floors {
		if f.Number == n {
			return f, true
		}
	}
	return FloorSpec{}, false
}

// DefaultDataset is the Eureka residence.
func DefaultDataset() Dataset {
	return Dataset{
		Building: client.CreateBuildingRequest{
			Name:             "Eureka",
			Code:             "ERK",
			Address:          "Eyang",
			FloorsCount:      1,
			ConstructionYear: client.Ptr(2025),
		},
		Floors: []FloorSpec{
			{Number: 0, ChemicalCode: "H", Name: "Hydrogène", Label: "RDC"},
			{Number: 1, ChemicalCode: "N", Name: "Azote", Label: "Etage 1"},
		},
		UnitTypes: []client.CreateUnitTypeRequest{
			unitType("Cage d'escalier", UnitTypeStairwell, false),
			unitType("Chambre", UnitTypeRoom, true),
			unitType("Couloir", UnitTypeCorridor, false),
			unitType("Local Technique", UnitTypeTechnicalRoom, false),
			unitType("Point d'accès WIFI", UnitTypeWifiAccess, false),
			unitType("Salle d'étude", UnitTypeStudyRoom, false),
		},
		OperationCategories: []client.CreateOperationCategoryRequest{
			category("SECURITE", "Opérations de sécurité", "#4ECDC4", "security"),
			category("HYDRIQUE", "Opérations à propos des eaux (fuite, inondation, infiltration...)", "#4ECDC4", "security"),
			category("ELECTRICITE", "Opérations de sécurité", "#45B7D1", "light"),
			category("WIFI", "Opérations sur le WIFI", "#96CEB4", "wifi"),
			category("EQUIPEMENT", "Opérations sur un equipement quelconque", "#96CEB4", "equipment"),
			category("PROPRETE", "Opérations de nettoyage/propreté", "#96CEB4", "cleaning"),
			category("AUTRE", "Opérations sans catégorie quelconque", "#96CEB4", "other"),
		},
		Contacts: []client.CreateContactRequest{
			contact("N/A", "+237 6 90 19 14 04", "STAFF", "Eureka Résidences", "Gestionnaire Principal", false),
			contact("Jean", "+237 6 40 58 09 03", "STAFF", "Eureka Résidences", "Gardien", false),
			contact("N/A", "117", "EMERGENCY", "Cameroun", "Police", true),
			contact("N/A", "120", "EMERGENCY", "Cameroun", "Gendarmerie", true),
			contact("N/A", "118", "EMERGENCY", "Cameroun", "Pompiers", true),
		},
		CommonAreas: append(commonAreas(0, "H", "RDC"), commonAreas(1, "N", "Etage 1")...),
	}
}

func unitType(name, code string, rentable bool) client.CreateUnitTypeRequest {
	return client.CreateUnitTypeRequest{
		Name:         name,
		Code:         code,
		IsRentable:   client.Ptr(rentable),
		ColorDisplay: unitTypeColor,
	}
}

func category(code, description, color, icon string) client.CreateOperationCategoryRequest {
	return client.CreateOperationCategoryRequest{
		Code:        code,
		Name:        code,
		Description: description,
		ColorCode:   color,
		IconName:    icon,
	}
}

func contact(firstName, phone, kind, org, position string, emergency bool) client.CreateContactRequest {
	return client.CreateContactRequest{
		FirstName:          firstName,
		LastName:           "N/A",
		PhoneNumber:        phone,
		Type:               kind,
		Organization:       org,
		Position:           position,
		IsPublic:           client.Ptr(true),
		IsEmergencyContact: emergency,
	}
}

// commonAreas lists the shared spaces of one floor. Identifiers with a dash
// after the floor letter (ERK-H-1) never collide with tenant rooms (ERK-H1);
// numbers from 10 up are reserved for shared rooms.
func commonAreas(floor int, letter, label string) []CommonArea {
	id := func(suffix string) string { return "ERK-" + letter + suffix }
	return []CommonArea{
		{floor, UnitTypeWifiAccess, id("-1"), "Point d'accès WIFI N°1 - EUREKA " + label},
		{floor, UnitTypeWifiAccess, id("-2"), "Point d'accès WIFI N°2 - EUREKA " + label},
		{floor, UnitTypeTechnicalRoom, id("10"), "Local Technique - EUREKA " + label},
		{floor, UnitTypeCorridor, id("11"), "Couloir - EUREKA " + label},
		{floor, UnitTypeStairwell, id("12"), "Cage d'escalier - EUREKA " + label},
	}
}
