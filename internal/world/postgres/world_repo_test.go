// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

var testCreatedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestWorldRepository_Get(t *testing.T) {
	worldID := ulid.Make()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "author", "seed", "complexity", "created_at"}).
					AddRow(worldID.String(), "Neon Sprawl", "generator", int64(42), 3, testCreatedAt)
				mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
					WithArgs(worldID.String()).
					WillReturnRows(rows)
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
					WithArgs(worldID.String()).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: world.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
					WithArgs(worldID.String()).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewWorldRepository(mock)
			got, err := repo.Get(context.Background(), worldID)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, worldID, got.ID)
				assert.Equal(t, "Neon Sprawl", got.Name)
				assert.Equal(t, int64(42), got.Seed)
				assert.Equal(t, 3, got.Complexity)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestWorldRepository_Create(t *testing.T) {
	w := &world.World{
		ID:         ulid.Make(),
		Name:       "Neon Sprawl",
		Author:     "generator",
		Seed:       42,
		Complexity: 3,
		CreatedAt:  testCreatedAt,
	}

	t.Run("successful insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO worlds`).
			WithArgs(w.ID.String(), w.Name, w.Author, w.Seed, w.Complexity, w.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewWorldRepository(mock)
		require.NoError(t, repo.Create(context.Background(), w))
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("duplicate id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO worlds`).
			WithArgs(w.ID.String(), w.Name, w.Author, w.Seed, w.Complexity, w.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		repo := NewWorldRepository(mock)
		err = repo.Create(context.Background(), w)
		assert.ErrorIs(t, err, world.ErrAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectExec(`INSERT INTO worlds`).
			WithArgs(w.ID.String(), w.Name, w.Author, w.Seed, w.Complexity, w.CreatedAt).
			WillReturnError(errors.New("connection refused"))

		repo := NewWorldRepository(mock)
		err = repo.Create(context.Background(), w)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}

func TestWorldRepository_Delete(t *testing.T) {
	worldID := ulid.Make()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful delete",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM worlds WHERE id = \$1`).
					WithArgs(worldID.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "unknown world",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM worlds WHERE id = \$1`).
					WithArgs(worldID.String()).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: world.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewWorldRepository(mock)
			err = repo.Delete(context.Background(), worldID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestWorldRepository_List(t *testing.T) {
	t.Run("returns worlds newest first", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		first, second := ulid.Make(), ulid.Make()
		rows := pgxmock.NewRows([]string{"id", "name", "author", "seed", "complexity", "created_at"}).
			AddRow(second.String(), "Later World", "generator", int64(7), 2, testCreatedAt.Add(time.Hour)).
			AddRow(first.String(), "Earlier World", "generator", int64(3), 4, testCreatedAt)
		mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
			WillReturnRows(rows)

		repo := NewWorldRepository(mock)
		got, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second, got[0].ID)
		assert.Equal(t, first, got[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("empty result", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "author", "seed", "complexity", "created_at"}))

		repo := NewWorldRepository(mock)
		got, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("row iteration error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "name", "author", "seed", "complexity", "created_at"}).
			AddRow(ulid.Make().String(), "World", "generator", int64(1), 1, testCreatedAt).
			RowError(0, errors.New("row iteration error"))
		mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
			WillReturnRows(rows)

		repo := NewWorldRepository(mock)
		_, err = repo.List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row iteration error")
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})

	t.Run("malformed id", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err, "failed to create mock")
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "name", "author", "seed", "complexity", "created_at"}).
			AddRow("not-a-ulid", "World", "generator", int64(1), 1, testCreatedAt)
		mock.ExpectQuery(`SELECT id, name, author, seed, complexity, created_at`).
			WillReturnRows(rows)

		repo := NewWorldRepository(mock)
		_, err = repo.List(context.Background())
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
	})
}
