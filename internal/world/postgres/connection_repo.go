// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// ConnectionRepository implements world.ConnectionRepository using PostgreSQL.
type ConnectionRepository struct {
	db DB
}

// NewConnectionRepository creates a new ConnectionRepository.
func NewConnectionRepository(db DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create persists a new connection.
// Callers must validate the connection before calling this method.
func (r *ConnectionRepository) Create(ctx context.Context, conn *world.Connection) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO connections (id, world_id, source_id, destination_id, transport,
			travel_time, travel_cost, requires_hacking, requires_special_access, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, conn.ID.String(), conn.WorldID.String(), conn.SourceID.String(), conn.DestinationID.String(),
		conn.Transport.String(), conn.TravelTime, conn.TravelCost,
		conn.RequiresHacking, conn.RequiresSpecialAccess, conn.CreatedAt)
	if err != nil {
		return oops.With("operation", "create connection").With("id", conn.ID.String()).Wrap(err)
	}
	return nil
}

// ListByWorld returns all connections of a world in creation order.
func (r *ConnectionRepository) ListByWorld(ctx context.Context, worldID ulid.ULID) ([]*world.Connection, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx, `
		SELECT id, world_id, source_id, destination_id, transport,
			travel_time, travel_cost, requires_hacking, requires_special_access, created_at
		FROM connections WHERE world_id = $1 ORDER BY seq
	`, worldID.String())
	if err != nil {
		return nil, oops.With("operation", "list connections").With("world_id", worldID.String()).Wrap(err)
	}
	defer rows.Close()

	conns := make([]*world.Connection, 0)
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate connections").Wrap(err)
	}
	return conns, nil
}

// Exists reports whether an edge between the two locations exists in either direction.
func (r *ConnectionRepository) Exists(ctx context.Context, sourceID, destinationID ulid.ULID) (bool, error) {
	var exists bool
	err := queryTarget(ctx, r.db).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM connections
			WHERE (source_id = $1 AND destination_id = $2)
			   OR (source_id = $2 AND destination_id = $1)
		)
	`, sourceID.String(), destinationID.String()).Scan(&exists)
	if err != nil {
		return false, oops.With("operation", "check connection exists").Wrap(err)
	}
	return exists, nil
}

func scanConnection(row pgx.Row) (*world.Connection, error) {
	var c world.Connection
	var idStr, worldIDStr, srcStr, dstStr, transportStr string
	if err := row.Scan(&idStr, &worldIDStr, &srcStr, &dstStr, &transportStr,
		&c.TravelTime, &c.TravelCost, &c.RequiresHacking, &c.RequiresSpecialAccess, &c.CreatedAt); err != nil {
		return nil, oops.With("operation", "scan connection").Wrap(err)
	}
	var err error
	if c.ID, err = ulid.Parse(idStr); err != nil {
		return nil, oops.With("operation", "parse connection id").With("id", idStr).Wrap(err)
	}
	if c.WorldID, err = ulid.Parse(worldIDStr); err != nil {
		return nil, oops.With("operation", "parse world id").With("world_id", worldIDStr).Wrap(err)
	}
	if c.SourceID, err = ulid.Parse(srcStr); err != nil {
		return nil, oops.With("operation", "parse source id").With("source_id", srcStr).Wrap(err)
	}
	if c.DestinationID, err = ulid.Parse(dstStr); err != nil {
		return nil, oops.With("operation", "parse destination id").With("destination_id", dstStr).Wrap(err)
	}
	c.Transport = world.TransportType(transportStr)
	return &c, nil
}

// Compile-time interface check.
var _ world.ConnectionRepository = (*ConnectionRepository)(nil)
