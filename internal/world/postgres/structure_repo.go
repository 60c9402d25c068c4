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

// StructureRepository implements world.StructureRepository using PostgreSQL.
// It covers buildings, rooms, devices, networks, and hacking puzzles.
type StructureRepository struct {
	db DB
}

// NewStructureRepository creates a new StructureRepository.
func NewStructureRepository(db DB) *StructureRepository {
	return &StructureRepository{db: db}
}

const buildingColumns = `id, world_id, location_id, type, name, floors, security_level,
	owner, services, requires_special_access, requires_hacking, created_at`

// CreateBuilding persists a new building.
func (r *StructureRepository) CreateBuilding(ctx context.Context, b *world.Building) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO buildings (id, world_id, location_id, type, name, floors, security_level,
			owner, services, requires_special_access, requires_hacking, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, b.ID.String(), b.WorldID.String(), b.LocationID.String(), b.Type.String(), b.Name,
		b.Floors, b.SecurityLevel, b.Owner, b.Services,
		b.RequiresSpecialAccess, b.RequiresHacking, b.CreatedAt)
	if err != nil {
		return oops.With("operation", "create building").With("id", b.ID.String()).Wrap(err)
	}
	return nil
}

// CreateRoom persists a new room.
func (r *StructureRepository) CreateRoom(ctx context.Context, room *world.Room) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO rooms (id, world_id, building_id, floor, type, name, is_locked, is_hackable, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, room.ID.String(), room.WorldID.String(), room.BuildingID.String(), room.Floor,
		string(room.Type), room.Name, room.IsLocked, room.IsHackable, room.CreatedAt)
	if err != nil {
		return oops.With("operation", "create room").With("id", room.ID.String()).Wrap(err)
	}
	return nil
}

// CreateDevice persists a new device.
func (r *StructureRepository) CreateDevice(ctx context.Context, d *world.Device) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO devices (id, world_id, location_id, building_id, owner_id, type, os,
			security_level, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, d.ID.String(), d.WorldID.String(), d.LocationID.String(),
		ulidToStringPtr(d.BuildingID), ulidToStringPtr(d.OwnerID),
		string(d.Type), string(d.OS), d.SecurityLevel, d.IPAddress, d.CreatedAt)
	if err != nil {
		return oops.With("operation", "create device").With("id", d.ID.String()).Wrap(err)
	}
	return nil
}

// CreateNetwork persists a new network.
func (r *StructureRepository) CreateNetwork(ctx context.Context, n *world.Network) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO networks (id, world_id, building_id, type, name, security_level,
			encryption, is_hidden, requires_hacking, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, n.ID.String(), n.WorldID.String(), n.BuildingID.String(), string(n.Type), n.Name,
		n.SecurityLevel, string(n.Encryption), n.IsHidden, n.RequiresHacking, n.CreatedAt)
	if err != nil {
		return oops.With("operation", "create network").With("id", n.ID.String()).Wrap(err)
	}
	return nil
}

// CreatePuzzle persists a new hacking puzzle.
func (r *StructureRepository) CreatePuzzle(ctx context.Context, p *world.HackingPuzzle) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO hacking_puzzles (id, world_id, target_kind, target_id, type, difficulty,
			reward_credits, reward_xp, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID.String(), p.WorldID.String(), string(p.TargetKind), p.TargetID.String(),
		string(p.Type), p.Difficulty, p.RewardCredits, p.RewardXP, p.CreatedAt)
	if err != nil {
		return oops.With("operation", "create hacking puzzle").With("id", p.ID.String()).Wrap(err)
	}
	return nil
}

// ListBuildingsByWorld returns all buildings of a world in creation order.
func (r *StructureRepository) ListBuildingsByWorld(ctx context.Context, worldID ulid.ULID) ([]*world.Building, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+buildingColumns+` FROM buildings WHERE world_id = $1 ORDER BY seq`, worldID.String())
	if err != nil {
		return nil, oops.With("operation", "list buildings by world").With("world_id", worldID.String()).Wrap(err)
	}
	defer rows.Close()
	return scanBuildings(rows)
}

// ListBuildingsByLocation returns a location's buildings in creation order.
func (r *StructureRepository) ListBuildingsByLocation(ctx context.Context, locationID ulid.ULID) ([]*world.Building, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+buildingColumns+` FROM buildings WHERE location_id = $1 ORDER BY seq`, locationID.String())
	if err != nil {
		return nil, oops.With("operation", "list buildings by location").With("location_id", locationID.String()).Wrap(err)
	}
	defer rows.Close()
	return scanBuildings(rows)
}

// GetBuilding retrieves a building by ID.
func (r *StructureRepository) GetBuilding(ctx context.Context, id ulid.ULID) (*world.Building, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx,
		`SELECT `+buildingColumns+` FROM buildings WHERE id = $1`, id.String())
	b, err := scanBuildingRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("BUILDING_NOT_FOUND").With("id", id.String()).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get building").With("id", id.String()).Wrap(err)
	}
	return b, nil
}

func scanBuildingRow(row pgx.Row) (*world.Building, error) {
	var b world.Building
	var idStr, worldIDStr, locIDStr, typeStr string
	if err := row.Scan(&idStr, &worldIDStr, &locIDStr, &typeStr, &b.Name, &b.Floors,
		&b.SecurityLevel, &b.Owner, &b.Services,
		&b.RequiresSpecialAccess, &b.RequiresHacking, &b.CreatedAt); err != nil {
		return nil, oops.With("operation", "scan building").Wrap(err)
	}
	var err error
	if b.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse building id").With("id", idStr).Wrap(err)
	}
	if b.WorldID, err = ulid.Parse(worldIDStr); err != nil {
		return nil, oops.With("operation", "parse world id").With("world_id", worldIDStr).Wrap(err)
	}
	if b.LocationID, err = ulid.Parse(locIDStr); err != nil {
		return nil, oops.With("operation", "parse location id").With("location_id", locIDStr).Wrap(err)
	}
	b.Type = world.BuildingType(typeStr)
	return &b, nil
}

func scanBuildings(rows pgx.Rows) ([]*world.Building, error) {
	buildings := make([]*world.Building, 0)
	for rows.Next() {
		b, err := scanBuildingRow(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate buildings").Wrap(err)
	}
	return buildings, nil
}

// Compile-time interface check.
var _ world.StructureRepository = (*StructureRepository)(nil)
