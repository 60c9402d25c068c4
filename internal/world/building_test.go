// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package world

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBuilding() Building {
	return Building{
		ID:            ulid.Make(),
		WorldID:       ulid.Make(),
		LocationID:    ulid.Make(),
		Type:          BuildingOfficeTower,
		Name:          "Helix Plaza",
		Floors:        12,
		SecurityLevel: 3,
	}
}

func TestBuilding_Validate(t *testing.T) {
	b := validBuilding()
	require.NoError(t, b.Validate())

	tests := []struct {
		name   string
		mutate func(*Building)
	}{
		{"zero id", func(b *Building) { b.ID = ulid.ULID{} }},
		{"zero world id", func(b *Building) { b.WorldID = ulid.ULID{} }},
		{"zero location id", func(b *Building) { b.LocationID = ulid.ULID{} }},
		{"empty name", func(b *Building) { b.Name = "" }},
		{"zero floors", func(b *Building) { b.Floors = 0 }},
		{"security out of range", func(b *Building) { b.SecurityLevel = 7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBuilding()
			tt.mutate(&b)
			assert.Error(t, b.Validate())
		})
	}
}

func TestRoomType_Sensitive(t *testing.T) {
	sensitive := []RoomType{RoomServerRoom, RoomVault, RoomExecutiveSuite, RoomLaboratory, RoomSecurityPost}
	for _, rt := range sensitive {
		assert.True(t, rt.Sensitive(), "%s should be sensitive", rt)
	}
	for _, rt := range []RoomType{RoomLobby, RoomOffice, RoomLounge, RoomStorage} {
		assert.False(t, rt.Sensitive(), "%s should not be sensitive", rt)
	}
}

func TestRoom_Validate(t *testing.T) {
	const floors = 5
	valid := Room{
		ID:         ulid.Make(),
		WorldID:    ulid.Make(),
		BuildingID: ulid.Make(),
		Floor:      3,
		Type:       RoomOffice,
	}
	require.NoError(t, valid.Validate(floors))

	tests := []struct {
		name   string
		mutate func(*Room)
	}{
		{"zero id", func(r *Room) { r.ID = ulid.ULID{} }},
		{"zero building id", func(r *Room) { r.BuildingID = ulid.ULID{} }},
		{"floor below ground", func(r *Room) { r.Floor = 0 }},
		{"floor above roof", func(r *Room) { r.Floor = floors + 1 }},
		{"hackable but unlocked", func(r *Room) { r.IsHackable = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			assert.Error(t, r.Validate(floors))
		})
	}

	t.Run("hackable locked room", func(t *testing.T) {
		r := valid
		r.IsLocked = true
		r.IsHackable = true
		assert.NoError(t, r.Validate(floors))
	})
}
