// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

var shopTestColumns = []string{
	"id", "world_id", "location_id", "building_id", "type", "name", "is_legal",
	"reputation", "price_modifier", "created_at",
}

func TestShopRepository_Get(t *testing.T) {
	shopID := ulid.Make()
	worldID := ulid.Make()
	locID := ulid.Make()
	buildingID := ulid.Make()
	buildingStr := buildingID.String()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows(shopTestColumns).
			AddRow(shopID.String(), worldID.String(), locID.String(), &buildingStr,
				"black_market", "The Back Room", false, 4, 1.45, testCreatedAt)
		mock.ExpectQuery(`SELECT .+ FROM shops WHERE id = \$1`).
			WithArgs(shopID.String()).
			WillReturnRows(rows)

		repo := NewShopRepository(mock)
		got, err := repo.Get(context.Background(), shopID)
		require.NoError(t, err)
		assert.Equal(t, world.ShopBlackMarket, got.Type)
		assert.False(t, got.IsLegal)
		require.NotNil(t, got.BuildingID)
		assert.Equal(t, buildingID, *got.BuildingID)
		assert.InDelta(t, 1.45, got.PriceModifier, 1e-9)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT .+ FROM shops WHERE id = \$1`).
			WithArgs(shopID.String()).
			WillReturnError(pgx.ErrNoRows)

		repo := NewShopRepository(mock)
		_, err = repo.Get(context.Background(), shopID)
		assert.ErrorIs(t, err, world.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestShopRepository_CreateInventoryEntry(t *testing.T) {
	expires := testCreatedAt.Add(72 * time.Hour)
	entry := &world.ShopInventoryEntry{
		ID:            ulid.Make(),
		WorldID:       ulid.Make(),
		ShopID:        ulid.Make(),
		ItemFamily:    world.FamilyWeapon,
		ItemID:        ulid.Make(),
		Quantity:      1,
		PriceModifier: 1.1,
		Featured:      true,
		LimitedTime:   true,
		ExpiresAt:     &expires,
		CreatedAt:     testCreatedAt,
	}

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO shop_inventory`).
		WithArgs(entry.ID.String(), entry.WorldID.String(), entry.ShopID.String(), "weapon",
			entry.ItemID.String(), entry.Quantity, entry.PriceModifier, entry.Featured,
			entry.LimitedTime, entry.ExpiresAt, entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewShopRepository(mock)
	require.NoError(t, repo.CreateInventoryEntry(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestShopRepository_ListInventory(t *testing.T) {
	shopID := ulid.Make()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	defer mock.Close()

	entryID := ulid.Make()
	rows := pgxmock.NewRows([]string{
		"id", "world_id", "shop_id", "item_family", "item_id", "quantity",
		"price_modifier", "featured", "limited_time", "expires_at", "created_at",
	}).AddRow(entryID.String(), ulid.Make().String(), shopID.String(), "consumable",
		ulid.Make().String(), 5, 1.0, false, false, (*time.Time)(nil), testCreatedAt)
	mock.ExpectQuery(`SELECT .+ FROM shop_inventory WHERE shop_id = \$1 ORDER BY seq`).
		WithArgs(shopID.String()).
		WillReturnRows(rows)

	repo := NewShopRepository(mock)
	got, err := repo.ListInventory(context.Background(), shopID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entryID, got[0].ID)
	assert.Equal(t, world.FamilyConsumable, got[0].ItemFamily)
	assert.Nil(t, got[0].ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
}

func TestShopRepository_ClearInventory(t *testing.T) {
	shopID := ulid.Make()

	t.Run("clears all entries", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM shop_inventory WHERE shop_id = \$1`).
			WithArgs(shopID.String()).
			WillReturnResult(pgxmock.NewResult("DELETE", 8))

		repo := NewShopRepository(mock)
		require.NoError(t, repo.ClearInventory(context.Background(), shopID))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM shop_inventory WHERE shop_id = \$1`).
			WithArgs(shopID.String()).
			WillReturnError(errors.New("connection lost"))

		repo := NewShopRepository(mock)
		err = repo.ClearInventory(context.Background(), shopID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection lost")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
