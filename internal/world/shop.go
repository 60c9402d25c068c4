// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ShopType identifies the category of a shop.
type ShopType string

// Shop types.
const (
	ShopWeapons     ShopType = "weapons"
	ShopHardware    ShopType = "hardware"
	ShopSoftware    ShopType = "software"
	ShopImplants    ShopType = "implant_clinic"
	ShopGeneral     ShopType = "general_store"
	ShopBlackMarket ShopType = "black_market"
	ShopFashion     ShopType = "fashion"
	ShopPharmacy    ShopType = "pharmacy"
)

// String returns the string representation of the shop type.
func (t ShopType) String() string {
	return string(t)
}

// Shop reputation bounds.
const (
	MinReputation = 1
	MaxReputation = 10
)

// Shop is a stocked storefront placed in a building (or, failing that,
// directly in a location).
type Shop struct {
	ID            ulid.ULID
	WorldID       ulid.ULID
	LocationID    ulid.ULID
	BuildingID    *ulid.ULID
	Type          ShopType
	Name          string
	IsLegal       bool
	Reputation    int
	PriceModifier float64
	CreatedAt     time.Time
}

// Validate checks the shop's fields.
func (s *Shop) Validate() error {
	if s.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if s.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if s.LocationID.IsZero() {
		return &ValidationError{Field: "location_id", Message: "cannot be zero"}
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if s.Reputation < MinReputation || s.Reputation > MaxReputation {
		return &ValidationError{Field: "reputation", Message: "must be between 1 and 10"}
	}
	if s.PriceModifier <= 0 {
		return &ValidationError{Field: "price_modifier", Message: "must be positive"}
	}
	return nil
}

// ShopInventoryEntry is one stocked slot of a shop. ItemID must reference an
// item created by the same generation run.
type ShopInventoryEntry struct {
	ID            ulid.ULID
	WorldID       ulid.ULID
	ShopID        ulid.ULID
	ItemFamily    ItemFamily
	ItemID        ulid.ULID
	Quantity      int
	PriceModifier float64
	Featured      bool
	LimitedTime   bool
	ExpiresAt     *time.Time // Set only for limited-time entries.
	CreatedAt     time.Time
}

// Validate checks the inventory entry's fields.
func (e *ShopInventoryEntry) Validate() error {
	if e.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if e.ShopID.IsZero() {
		return &ValidationError{Field: "shop_id", Message: "cannot be zero"}
	}
	if e.ItemID.IsZero() {
		return &ValidationError{Field: "item_id", Message: "cannot be zero"}
	}
	if err := e.ItemFamily.Validate(); err != nil {
		return err
	}
	if e.Quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "must be at least 1"}
	}
	if e.PriceModifier <= 0 {
		return &ValidationError{Field: "price_modifier", Message: "must be positive"}
	}
	if e.LimitedTime && e.ExpiresAt == nil {
		return &ValidationError{Field: "expires_at", Message: "required for limited-time entries"}
	}
	return nil
}
