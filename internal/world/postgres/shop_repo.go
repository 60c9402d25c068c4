// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// ShopRepository implements world.ShopRepository using PostgreSQL.
type ShopRepository struct {
	db DB
}

// NewShopRepository creates a new ShopRepository.
func NewShopRepository(db DB) *ShopRepository {
	return &ShopRepository{db: db}
}

const shopColumns = `id, world_id, location_id, building_id, type, name, is_legal,
	reputation, price_modifier, created_at`

// Create persists a new shop.
// Callers must validate the shop before calling this method.
func (r *ShopRepository) Create(ctx context.Context, s *world.Shop) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO shops (id, world_id, location_id, building_id, type, name, is_legal,
			reputation, price_modifier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID.String(), s.WorldID.String(), s.LocationID.String(), ulidToStringPtr(s.BuildingID),
		s.Type.String(), s.Name, s.IsLegal, s.Reputation, s.PriceModifier, s.CreatedAt)
	if err != nil {
		return oops.With("operation", "create shop").With("id", s.ID.String()).Wrap(err)
	}
	return nil
}

// Get retrieves a shop by ID.
func (r *ShopRepository) Get(ctx context.Context, id ulid.ULID) (*world.Shop, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE id = $1`, id.String())
	s, err := scanShop(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SHOP_NOT_FOUND").With("id", id.String()).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get shop").With("id", id.String()).Wrap(err)
	}
	return s, nil
}

// ListByWorld returns a world's shops in creation order.
func (r *ShopRepository) ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*world.Shop, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+shopColumns+` FROM shops WHERE world_id = $1 ORDER BY seq`, worldID.String())
	if err != nil {
		return nil, oops.With("operation", "list shops").With("world_id", worldID.String()).Wrap(err)
	}
	defer rows.Close()

	shops := make([]*world.Shop, 0)
	for rows.Next() {
		s, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate shops").Wrap(err)
	}
	return shops, nil
}

// CreateInventoryEntry persists a new inventory entry.
func (r *ShopRepository) CreateInventoryEntry(ctx context.Context, e *world.ShopInventoryEntry) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO shop_inventory (id, world_id, shop_id, item_family, item_id, quantity,
			price_modifier, featured, limited_time, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, e.ID.String(), e.WorldID.String(), e.ShopID.String(), string(e.ItemFamily),
		e.ItemID.String(), e.Quantity, e.PriceModifier, e.Featured, e.LimitedTime,
		e.ExpiresAt, e.CreatedAt)
	if err != nil {
		return oops.With("operation", "create inventory entry").With("id", e.ID.String()).Wrap(err)
	}
	return nil
}

// ListInventory returns a shop's inventory entries in creation order.
func (r *ShopRepository) ListInventory(ctx context.Context, shopID ulid.ULID) ([]*world.ShopInventoryEntry, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx, `
		SELECT id, world_id, shop_id, item_family, item_id, quantity,
			price_modifier, featured, limited_time, expires_at, created_at
		FROM shop_inventory WHERE shop_id = $1 ORDER BY seq
	`, shopID.String())
	if err != nil {
		return nil, oops.With("operation", "list shop inventory").With("shop_id", shopID.String()).Wrap(err)
	}
	defer rows.Close()

	entries := make([]*world.ShopInventoryEntry, 0)
	for rows.Next() {
		var e world.ShopInventoryEntry
		var idStr, worldIDStr, shopIDStr, familyStr, itemIDStr string
		if err := rows.Scan(&idStr, &worldIDStr, &shopIDStr, &familyStr, &itemIDStr,
			&e.Quantity, &e.PriceModifier, &e.Featured, &e.LimitedTime, &e.ExpiresAt, &e.CreatedAt); err != nil {
			return nil, oops.With("operation", "scan inventory entry").Wrap(err)
		}
		var err error
		if e.ID, err = ulid.Parse(idStr); err != nil {
			return nil, oops.With("operation", "parse entry id").With("id", idStr).Wrap(err)
		}
		if e.WorldID, err = ulid.Parse(worldIDStr); err != nil {
			return nil, oops.With("operation", "parse world id").With("world_id", worldIDStr).Wrap(err)
		}
		if e.ShopID, err = ulid.Parse(shopIDStr); err != nil {
			return nil, oops.With("operation", "parse shop id").With("shop_id", shopIDStr).Wrap(err)
		}
		if e.ItemID, err = ulid.Parse(itemIDStr); err != nil {
			return nil, oops.With("operation", "parse item id").With("item_id", itemIDStr).Wrap(err)
		}
		e.ItemFamily = world.ItemFamily(familyStr)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate inventory entries").Wrap(err)
	}
	return entries, nil
}

// ClearInventory removes all inventory entries of a shop.
func (r *ShopRepository) ClearInventory(ctx context.Context, shopID ulid.ULID) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx,
		`DELETE FROM shop_inventory WHERE shop_id = $1`, shopID.String())
	if err != nil {
		return oops.With("operation", "clear shop inventory").With("shop_id", shopID.String()).Wrap(err)
	}
	return nil
}

func scanShop(row pgx.Row) (*world.Shop, error) {
	var s world.Shop
	var idStr, worldIDStr, locIDStr, typeStr string
	var buildingIDStr *string
	if err := row.Scan(&idStr, &worldIDStr, &locIDStr, &buildingIDStr, &typeStr, &s.Name,
		&s.IsLegal, &s.Reputation, &s.PriceModifier, &s.CreatedAt); err != nil {
		return nil, oops.With("operation", "scan shop").Wrap(err)
	}
	var err error
	if s.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse shop id").With("id", idStr).Wrap(err)
	}
	if s.WorldID, err = ulid.Parse(worldIDStr); err != nil {
		return nil, oops.With("operation", "parse world id").With("world_id", worldIDStr).Wrap(err)
	}
	if s.LocationID, err = ulid.Parse(locIDStr); err != nil {
		return nil, oops.With("operation", "parse location id").With("location_id", locIDStr).Wrap(err)
	}
	if s.BuildingID, err = parseOptionalULID(buildingIDStr, "building_id"); err != nil {
		return nil, err
	}
	s.Type = world.ShopType(typeStr)
	return &s, nil
}

// Compile-time interface check.
var _ world.ShopRepository = (*ShopRepository)(nil)
