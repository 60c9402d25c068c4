// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

var itemTestColumns = []string{
	"id", "world_id", "family", "type", "name", "rarity", "level", "stats", "price",
	"is_illegal", "placement", "placement_id", "created_at",
}

func TestItemRepository_Create(t *testing.T) {
	ownerID := ulid.Make()
	item := &world.Item{
		ID:          ulid.Make(),
		WorldID:     ulid.Make(),
		Family:      world.FamilyWeapon,
		Type:        "smart_pistol",
		Name:        "Kestrel Mk.II",
		Rarity:      world.RarityRare,
		Level:       4,
		Stats:       map[string]float64{"damage": 34.5},
		Price:       1800,
		Placement:   world.PlacementCharacter,
		PlacementID: &ownerID,
		CreatedAt:   testCreatedAt,
	}

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	// Stats serialize to JSONB; match the marshalled bytes loosely.
	mock.ExpectExec(`INSERT INTO items`).
		WithArgs(item.ID.String(), item.WorldID.String(), "weapon", item.Type, item.Name,
			"rare", item.Level, pgxmock.AnyArg(), item.Price, item.IsIllegal,
			"character", pgxmock.AnyArg(), item.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewItemRepository(mock)
	require.NoError(t, repo.Create(context.Background(), item))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestItemRepository_Get(t *testing.T) {
	itemID := ulid.Make()

	t.Run("unmarshals stats", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows(itemTestColumns).
			AddRow(itemID.String(), ulid.Make().String(), "software", "icebreaker",
				"NullSect v2.4.1", "epic", 7, []byte(`{"strength":48.2,"load":3.1}`),
				5200, true, "world_loot", (*string)(nil), testCreatedAt)
		mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1`).
			WithArgs(itemID.String()).
			WillReturnRows(rows)

		repo := NewItemRepository(mock)
		got, err := repo.Get(context.Background(), itemID)
		require.NoError(t, err)
		assert.Equal(t, world.FamilySoftware, got.Family)
		assert.Equal(t, world.RarityEpic, got.Rarity)
		assert.InDelta(t, 48.2, got.Stats["strength"], 1e-9)
		assert.True(t, got.IsIllegal)
		assert.Nil(t, got.PlacementID)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1`).
			WithArgs(itemID.String()).
			WillReturnError(pgx.ErrNoRows)

		repo := NewItemRepository(mock)
		_, err = repo.Get(context.Background(), itemID)
		assert.ErrorIs(t, err, world.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("corrupt stats json", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows(itemTestColumns).
			AddRow(itemID.String(), ulid.Make().String(), "software", "icebreaker",
				"NullSect", "epic", 7, []byte(`{broken`),
				5200, true, "world_loot", (*string)(nil), testCreatedAt)
		mock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1`).
			WithArgs(itemID.String()).
			WillReturnRows(rows)

		repo := NewItemRepository(mock)
		_, err = repo.Get(context.Background(), itemID)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
