// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ItemFamily identifies one of the tradeable item families.
type ItemFamily string

// Item families.
const (
	FamilyHardware   ItemFamily = "hardware"
	FamilyConsumable ItemFamily = "consumable"
	FamilyWeapon     ItemFamily = "weapon"
	FamilyImplant    ItemFamily = "implant"
	FamilySoftware   ItemFamily = "software"
	FamilyClothing   ItemFamily = "clothing"
)

// ErrInvalidItemFamily indicates an unrecognized item family.
var ErrInvalidItemFamily = &ValidationError{Field: "family", Message: "unrecognized item family"}

// Validate checks that the family is a recognized value.
func (f ItemFamily) Validate() error {
	switch f {
	case FamilyHardware, FamilyConsumable, FamilyWeapon, FamilyImplant, FamilySoftware, FamilyClothing:
		return nil
	default:
		return ErrInvalidItemFamily
	}
}

// Rarity is an item's rarity tier, driving the multiplier applied to every
// derived stat and the price.
type Rarity string

// Rarity tiers, in ascending order.
const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Rarities lists all tiers in ascending order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// Rank returns the tier's position in ascending order, starting at 0.
// Unknown tiers rank below common.
func (r Rarity) Rank() int {
	for i, tier := range Rarities {
		if tier == r {
			return i
		}
	}
	return -1
}

// ErrInvalidRarity indicates an unrecognized rarity tier.
var ErrInvalidRarity = &ValidationError{Field: "rarity", Message: "unrecognized rarity tier"}

// Validate checks that the rarity is a recognized tier.
func (r Rarity) Validate() error {
	if r.Rank() < 0 {
		return ErrInvalidRarity
	}
	return nil
}

// Item level bounds.
const (
	MinItemLevel = 1
	MaxItemLevel = 10
)

// PlacementKind identifies where an item ended up.
type PlacementKind string

// Placement kinds.
const (
	PlacementDevice    PlacementKind = "device"
	PlacementBuilding  PlacementKind = "building"
	PlacementCharacter PlacementKind = "character"
	PlacementShop      PlacementKind = "shop"
	PlacementWorldLoot PlacementKind = "world_loot"
)

// Item is one generated tradeable item. Stats fields are family- and
// type-specific; every numeric stat follows the rarity multiplier pattern.
type Item struct {
	ID          ulid.ULID
	WorldID     ulid.ULID
	Family      ItemFamily
	Type        string
	Name        string
	Rarity      Rarity
	Level       int
	Stats       map[string]float64
	Price       int
	IsIllegal   bool
	Placement   PlacementKind
	PlacementID *ulid.ULID // Owning device/building/character/shop; nil for world loot.
	CreatedAt   time.Time
}

// Validate checks the item's fields.
func (i *Item) Validate() error {
	if i.ID.IsZero() {
		return &ValidationError{Field: "id", Message: "cannot be zero"}
	}
	if i.WorldID.IsZero() {
		return &ValidationError{Field: "world_id", Message: "cannot be zero"}
	}
	if err := i.Family.Validate(); err != nil {
		return err
	}
	if err := i.Rarity.Validate(); err != nil {
		return err
	}
	if err := ValidateName(i.Name); err != nil {
		return err
	}
	if i.Level < MinItemLevel || i.Level > MaxItemLevel {
		return &ValidationError{Field: "level", Message: "must be between 1 and 10"}
	}
	if i.Price < 0 {
		return &ValidationError{Field: "price", Message: "cannot be negative"}
	}
	return nil
}
