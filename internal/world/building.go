// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// BuildingType identifies the category of a building.
type BuildingType string

// Building types.
const (
	BuildingCorporateHQ  BuildingType = "corporate_hq"
	BuildingOfficeTower  BuildingType = "office_tower"
	BuildingDataCenter   BuildingType = "data_center"
	BuildingResearchLab  BuildingType = "research_lab"
	BuildingFactory      BuildingType = "factory"
	BuildingWarehouse    BuildingType = "warehouse"
	BuildingApartment    BuildingType = "apartment_block"
	BuildingLuxuryTower  BuildingType = "luxury_tower"
	BuildingTenement     BuildingType = "tenement"
	BuildingMarketHall   BuildingType = "market_hall"
	BuildingMall         BuildingType = "shopping_mall"
	BuildingNightclub    BuildingType = "nightclub"
	BuildingClinic       BuildingType = "clinic"
	BuildingPoliceHub    BuildingType = "police_hub"
	BuildingTransitHub   BuildingType = "transit_hub"
	BuildingAbandonedLot BuildingType = "abandoned_lot"
)

// String returns the string representation of the building type.
func (t BuildingType) String() string {
	return string(t)
}

// Building is a structure inside a non-virtual location.
type Building struct {
	ID                    ulid.ULID
	WorldID               ulid.ULID
	LocationID            ulid.ULID
	Type                  BuildingType
	Name                  string
	Floors                int
	SecurityLevel         int
	Owner                 string
	Services              []string
	RequiresSpecialAccess bool
	RequiresHacking       bool
	CreatedAt             time.Time
}

// Validate checks the building's fields. Floors must be at least 1 and the
// security level bounded to [MinSecurityLevel, MaxSecurityLevel].
func (b *Building) Validate() error {
	if b.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if b.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if b.LocationID.IsZero() {
		return &ValidationError{Field: "location_id", Message: "cannot be zero"}
	}
	if err := ValidateName(b.Name); err != nil {
		return err
	}
	if b.Floors < 1 {
		return &ValidationError{Field: "floors", Message: "must be at least 1"}
	}
	return ValidateSecurityLevel(b.SecurityLevel)
}

// RoomType identifies the category of a room.
type RoomType string

// Room types. Sensitive rooms are locked with higher probability as the
// building's security level rises.
const (
	RoomLobby          RoomType = "lobby"
	RoomOffice         RoomType = "office"
	RoomMeetingRoom    RoomType = "meeting_room"
	RoomServerRoom     RoomType = "server_room"
	RoomVault          RoomType = "vault"
	RoomExecutiveSuite RoomType = "executive_suite"
	RoomLaboratory     RoomType = "laboratory"
	RoomStorage        RoomType = "storage"
	RoomWorkshop       RoomType = "workshop"
	RoomLiving         RoomType = "living_quarters"
	RoomSecurityPost   RoomType = "security_post"
	RoomLounge         RoomType = "lounge"
	RoomUtility        RoomType = "utility_room"
)

// Sensitive reports whether the room type holds something worth locking up.
func (t RoomType) Sensitive() bool {
	switch t {
	case RoomServerRoom, RoomVault, RoomExecutiveSuite, RoomLaboratory, RoomSecurityPost:
		return true
	default:
		return false
	}
}

// Room is one room on one floor of a building.
type Room struct {
	ID         ulid.ULID
	WorldID    ulid.ULID
	BuildingID ulid.ULID
	Floor      int
	Type       RoomType
	Name       string
	IsLocked   bool
	IsHackable bool
	CreatedAt  time.Time
}

// Validate checks the room's fields against its owning building.
func (r *Room) Validate(floors int) error {
	if r.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if r.BuildingID.IsZero() {
		return &ValidationError{Field: "building_id", Message: "cannot be zero"}
	}
	if r.Floor < 1 || r.Floor > floors {
		return &ValidationError{Field: "floor", Message: "outside the building's floor range"}
	}
	// A hackable lock implies a lock.
	if r.IsHackable && !r.IsLocked {
		return &ValidationError{Field: "is_hackable", Message: "only locked rooms can be hackable"}
	}
	return nil
}
