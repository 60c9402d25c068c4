// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// ItemRepository implements world.ItemRepository using PostgreSQL.
// Stats maps are stored as JSONB.
type ItemRepository struct {
	db DB
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, world_id, family, type, name, rarity, level, stats, price,
	is_illegal, placement, placement_id, created_at`

// Create persists a new item.
// Callers must validate the item before calling this method.
func (r *ItemRepository) Create(ctx context.Context, i *world.Item) error {
	stats, err := json.Marshal(i.Stats)
	if err != nil {
		return oops.Code("ITEM_STATS_MARSHAL_FAILED").With("id", i.ID.String()).Wrap(err)
	}
	_, err = queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO items (id, world_id, family, type, name, rarity, level, stats, price,
			is_illegal, placement, placement_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, i.ID.String(), i.WorldID.String(), string(i.Family), i.Type, i.Name, string(i.Rarity),
		i.Level, stats, i.Price, i.IsIllegal, string(i.Placement),
		ulidToStringPtr(i.PlacementID), i.CreatedAt)
	if err != nil {
		return oops.With("operation", "create item").With("id", i.ID.String()).Wrap(err)
	}
	return nil
}

// Get retrieves an item by ID.
func (r *ItemRepository) Get(ctx context.Context, id ulid.ULID) (*world.Item, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id.String())
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ITEM_NOT_FOUND").With("id", id.String()).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get item").With("id", id.String()).Wrap(err)
	}
	return item, nil
}

// ListByWorld returns a world's items in creation order.
func (r *ItemRepository) ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*world.Item, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE world_id = $1 ORDER BY seq`, worldID.String())
	if err != nil {
		return nil, oops.With("operation", "list items").With("world_id", worldID.String()).Wrap(err)
	}
	defer rows.Close()

	items := make([]*world.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate items").Wrap(err)
	}
	return items, nil
}

func scanItem(row pgx.Row) (*world.Item, error) {
	var i world.Item
	var idStr, worldIDStr, familyStr, rarityStr, placementStr string
	var placementIDStr *string
	var statsJSON []byte
	if err := row.Scan(&idStr, &worldIDStr, &familyStr, &i.Type, &i.Name, &rarityStr,
		&i.Level, &statsJSON, &i.Price, &i.IsIllegal, &placementStr, &placementIDStr, &i.CreatedAt); err != nil {
		return nil, oops.With("operation", "scan item").Wrap(err)
	}
	var err error
	if i.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse item id").With("id", idStr).Wrap(err)
	}
	if i.WorldID, err = ulid.Parse(worldIDStr); err != nil {
		return nil, oops.With("operation", "parse world id").With("world_id", worldIDStr).Wrap(err)
	}
	if i.PlacementID, err = parseOptionalULID(placementIDStr, "placement_id"); err != nil {
		return nil, err
	}
	if len(statsJSON) > 0 {
		if err := json.Unmarshal(statsJSON, &i.Stats); err != nil {
			return nil, oops.Code("ITEM_STATS_UNMARSHAL_FAILED").With("id", idStr).Wrap(err)
		}
	}
	i.Family = world.ItemFamily(familyStr)
	i.Rarity = world.Rarity(rarityStr)
	i.Placement = world.PlacementKind(placementStr)
	return &i, nil
}

// Compile-time interface check.
var _ world.ItemRepository = (*ItemRepository)(nil)
