package seed

import (
	"fmt"
	"strings"

	"github.com/eureka-residences/erkseed/client"
)

// groundFloorMarker in an email places the room on the ground floor.
const groundFloorMarker = "eureka-h"

// Room is where a tenant account lives, derived from its email.
type Room struct {
	FloorNumber int
	Identifier  string // ERK-H1
	Name        string // Chambre N°1 - EUREKA RDC
}

// RoomFromEmail derives the room of a tenant account. Emails look like
// eureka-<floor letter><number>@domain; eureka-h... is the ground floor and
// anything else the first floor.
func RoomFromEmail(email string, ds Dataset) (Room, error) {
	local, _, ok := strings.Cut(email, "@")
	if !ok {
		return Room{}, fmt.Errorf("email %q has no domain", email)
	}
	_, room, ok := strings.Cut(local, "-")
	if !ok || len(room) < 2 {
		return Room{}, fmt.Errorf("email %q does not name a room (want eureka-<letter><number>@...)", email)
	}

	floorNumber := 1
	if strings.Contains(email, groundFloorMarker) {
		floorNumber = 0
	}
	floor, ok := ds.FloorByNumber(floorNumber)
	if !ok {
		return Room{}, fmt.Errorf("no floor %d in dataset for %q", floorNumber, email)
	}

	return Room{
		FloorNumber: floorNumber,
		Identifier:  "ERK-" + strings.ToUpper(room),
		Name:        fmt.Sprintf("Chambre N°%s - EUREKA %s", room[1:], floor.Label),
	}, nil
}

// TenantUnit is the occupied room payload for user.
func TenantUnit(user client.User, room Room, floorID, unitTypeID string) client.CreateUnitRequest {
	return client.CreateUnitRequest{
		Floor:           floorID,
		UnitType:        unitTypeID,
		Identifier:      room.Identifier,
		Name:            client.Ptr(room.Name),
		CurrentStatus:   tenantRoomStatus,
		CurrentOccupant: client.Ptr(user.ID),
		AreaM2:          client.Ptr(tenantRoomAreaM2),
	}
}
