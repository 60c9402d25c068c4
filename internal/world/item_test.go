// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemFamily_Validate(t *testing.T) {
	for _, f := range []ItemFamily{FamilyHardware, FamilyConsumable, FamilyWeapon, FamilyImplant, FamilySoftware, FamilyClothing} {
		assert.NoError(t, f.Validate())
	}
	assert.ErrorIs(t, ItemFamily("furniture").Validate(), ErrInvalidItemFamily)
}

func TestRarity_Rank(t *testing.T) {
	assert.Equal(t, 0, RarityCommon.Rank())
	assert.Equal(t, 1, RarityUncommon.Rank())
	assert.Equal(t, 2, RarityRare.Rank())
	assert.Equal(t, 3, RarityEpic.Rank())
	assert.Equal(t, 4, RarityLegendary.Rank())
	assert.Equal(t, -1, Rarity("mythic").Rank())
}

func TestRarity_Validate(t *testing.T) {
	for _, r := range Rarities {
		assert.NoError(t, r.Validate())
	}
	assert.ErrorIs(t, Rarity("mythic").Validate(), ErrInvalidRarity)
}

func TestItem_Validate(t *testing.T) {
	valid := Item{
		ID:        ulid.Make(),
		WorldID:   ulid.Make(),
		Family:    FamilyWeapon,
		Type:      "smart_pistol",
		Name:      "Kestrel Mk.II",
		Rarity:    RarityRare,
		Level:     4,
		Stats:     map[string]float64{"damage": 34.5},
		Price:     1800,
		Placement: PlacementWorldLoot,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Item)
	}{
		{"zero id", func(i *Item) { i.ID = ulid.ULID{} }},
		{"zero world id", func(i *Item) { i.WorldID = ulid.ULID{} }},
		{"bad family", func(i *Item) { i.Family = "furniture" }},
		{"bad rarity", func(i *Item) { i.Rarity = "mythic" }},
		{"empty name", func(i *Item) { i.Name = "" }},
		{"level too low", func(i *Item) { i.Level = 0 }},
		{"level too high", func(i *Item) { i.Level = 11 }},
		{"negative price", func(i *Item) { i.Price = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := valid
			tt.mutate(&i)
			assert.Error(t, i.Validate())
		})
	}
}
