// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// WorldRepository implements world.WorldRepository using PostgreSQL.
type WorldRepository struct {
	db DB
}

// NewWorldRepository creates a new WorldRepository.
func NewWorldRepository(db DB) *WorldRepository {
	return &WorldRepository{db: db}
}

// Get retrieves a world by ID.
func (r *WorldRepository) Get(ctx context.Context, id ulid.ULID) (*world.World, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx, `
		SELECT id, name, author, seed, complexity, created_at
		FROM worlds WHERE id = $1
	`, id.String())
	w, err := scanWorldRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("WORLD_NOT_FOUND").With("id", id.String()).Wrap(world.ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get world").With("id", id.String()).Wrap(err)
	}
	return w, nil
}

// Create persists a new world record.
// Callers must validate the world before calling this method.
func (r *WorldRepository) Create(ctx context.Context, w *world.World) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx, `
		INSERT INTO worlds (id, name, author, seed, complexity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, w.ID.String(), w.Name, w.Author, w.Seed, w.Complexity, w.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return oops.Code("WORLD_EXISTS").With("id", w.ID.String()).Wrap(world.ErrAlreadyExists)
	}
	if err != nil {
		return oops.With("operation", "create world").With("id", w.ID.String()).Wrap(err)
	}
	return nil
}

// Delete removes a world. Child rows go with it via ON DELETE CASCADE.
func (r *WorldRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := queryTarget(ctx, r.db).Exec(ctx, `DELETE FROM worlds WHERE id = $1`, id.String())
	if err != nil {
		return oops.With("operation", "delete world").With("id", id.String()).Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("WORLD_NOT_FOUND").With("id", id.String()).Wrap(world.ErrNotFound)
	}
	return nil
}

// List returns all worlds, newest first.
func (r *WorldRepository) List(ctx context.Context) ([]*world.World, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx, `
		SELECT id, name, author, seed, complexity, created_at
		FROM worlds ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, oops.With("operation", "list worlds").Wrap(err)
	}
	defer rows.Close()

	worlds := make([]*world.World, 0)
	for rows.Next() {
		w, err := scanWorldRow(rows)
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate worlds").Wrap(err)
	}
	return worlds, nil
}

func scanWorldRow(row pgx.Row) (*world.World, error) {
	var w world.World
	var idStr string
	if err := row.Scan(&idStr, &w.Name, &w.Author, &w.Seed, &w.Complexity, &w.CreatedAt); err != nil {
		return nil, oops.With("operation", "scan world").Wrap(err)
	}
	var err error
	w.ID, err = ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse world id").With("id", idStr).Wrap(err)
	}
	return &w, nil
}

// Compile-time interface check.
var _ world.WorldRepository = (*WorldRepository)(nil)
