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

// LocationRepository implements world.LocationRepository using PostgreSQL.
type LocationRepository struct {
	db DB
}

// NewLocationRepository creates a new LocationRepository.
func NewLocationRepository(db DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, world_id, parent_id, kind, archetype, name, x, y,
	security_level, population, services, tags, is_virtual, is_special, is_dangerous, created_at`

// Get retrieves a location by ID.
func (r *LocationRepository) Get(ctx context.Context, id ulid.ULID) (*world.Location, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1`, id.String())
	loc, err := scanLocationRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("LOCATION_NOT_FOUND").With("id", id.String()).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get location").With("id", id.String()).Wrap(err)
	}
	return loc, nil
}

// Create persists a new location.
// Callers must validate the location before calling this method.
func (r *LocationRepository) Create(ctx context.Context, loc *world.Location) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO locations (id, world_id, parent_id, kind, archetype, name, x, y,
			security_level, population, services, tags, is_virtual, is_special, is_dangerous, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`, loc.ID.String(), loc.WorldID.String(), ulidToStringPtr(loc.ParentID), loc.Kind.String(),
		loc.Archetype, loc.Name, loc.X, loc.Y, loc.SecurityLevel, loc.Population,
		loc.Services, loc.Tags, loc.IsVirtual, loc.IsSpecial, loc.IsDangerous, loc.CreatedAt)
	if err != nil {
		return oops.With("operation", "create location").With("id", loc.ID.String()).Wrap(err)
	}
	return nil
}

// ListByWorld returns all locations of a world in creation order.
func (r *LocationRepository) ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*world.Location, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE world_id = $1 ORDER BY seq`, worldID.String())
	if err != nil {
		return nil, oops.With("operation", "list locations by world").With("world_id", worldID.String()).Wrap(err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

// ListByKind returns a world's locations of the given kind in creation order.
func (r *LocationRepository) ListByKind(ctx context.Context, worldID ulid.ULID, kind world.LocationKind) ([]*world.Location, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE world_id = $1 AND kind = $2 ORDER BY seq`,
		worldID.String(), kind.String())
	if err != nil {
		return nil, oops.With("operation", "list locations by kind").With("kind", kind.String()).Wrap(err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

// ListChildren returns the districts of a city in creation order.
func (r *LocationRepository) ListChildren(ctx context.Context, parentID ulid.ULID) ([]*world.Location, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE parent_id = $1 ORDER BY seq`, parentID.String())
	if err != nil {
		return nil, oops.With("operation", "list child locations").With("parent_id", parentID.String()).Wrap(err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

// locationScanFields holds intermediate scan values for location parsing.
type locationScanFields struct {
	idStr       string
	worldIDStr  string
	parentIDStr *string
	kindStr     string
}

func scanLocationRow(row pgx.Row) (*world.Location, error) {
	var loc world.Location
	var f locationScanFields
	err := row.Scan(
		&f.idStr, &f.worldIDStr, &f.parentIDStr, &f.kindStr, &loc.Archetype, &loc.Name,
		&loc.X, &loc.Y, &loc.SecurityLevel, &loc.Population, &loc.Services, &loc.Tags,
		&loc.IsVirtual, &loc.IsSpecial, &loc.IsDangerous, &loc.CreatedAt,
	)
	if err != nil {
		return nil, oops.With("operation", "scan location").Wrap(err)
	}
	if err := parseLocationFromFields(&f, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func parseLocationFromFields(f *locationScanFields, loc *world.Location) error {
	var err error
	loc.ID, err = ulid.Parse(f.idStr)
	if err != nil {
		return oops.With("operation", "parse location id").With("id", f.idStr).Wrap(err)
	}
	loc.WorldID, err = ulid.Parse(f.worldIDStr)
	if err != nil {
		return oops.With("operation", "parse world id").With("world_id", f.worldIDStr).Wrap(err)
	}
	loc.ParentID, err = parseOptionalULID(f.parentIDStr, "parent_id")
	if err != nil {
		return err
	}
	loc.Kind = world.LocationKind(f.kindStr)
	return nil
}

func scanLocations(rows pgx.Rows) ([]*world.Location, error) {
	locations := make([]*world.Location, 0)
	for rows.Next() {
		var loc world.Location
		var f locationScanFields
		if err := rows.Scan(
			&f.idStr, &f.worldIDStr, &f.parentIDStr, &f.kindStr, &loc.Archetype, &loc.Name,
			&loc.X, &loc.Y, &loc.SecurityLevel, &loc.Population, &loc.Services, &loc.Tags,
			&loc.IsVirtual, &loc.IsSpecial, &loc.IsDangerous, &loc.CreatedAt,
		); err != nil {
			return nil, oops.With("operation", "scan location").Wrap(err)
		}
		if err := parseLocationFromFields(&f, &loc); err != nil {
			return nil, err
		}
		locations = append(locations, &loc)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate locations").Wrap(err)
	}
	return locations, nil
}

// Compile-time interface check.
var _ world.LocationRepository = (*LocationRepository)(nil)
