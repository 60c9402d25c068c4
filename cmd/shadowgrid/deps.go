// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shadowgrid/shadowgrid/internal/config"
	"github.com/shadowgrid/shadowgrid/internal/gen"
	"github.com/shadowgrid/shadowgrid/internal/logging"
	"github.com/shadowgrid/shadowgrid/internal/store"
	"github.com/shadowgrid/shadowgrid/internal/world"
	"github.com/shadowgrid/shadowgrid/internal/world/postgres"
)

// app bundles everything a database-backed subcommand needs.
type app struct {
	cfg       *config.Config
	pool      *pgxpool.Pool
	generator *gen.Generator
}

// loadConfig loads configuration with the command's flag overrides and
// installs the default logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, cmd.Root().PersistentFlags())
	if err != nil {
		return nil, err
	}
	logging.SetDefault("shadowgrid", version, cfg.Log.Format, cfg.Log.Level)
	return cfg, nil
}

// initApp loads config, connects to the database, and wires the generator.
// The returned cleanup closes the pool.
func initApp(ctx context.Context, cmd *cobra.Command) (*app, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.URL == "" {
		return nil, nil, oops.Code("CONFIG_INVALID").
			Errorf("database URL is required (config file, --database.url, or DATABASE_URL)")
	}

	if cfg.Database.AutoMigrate {
		m, err := store.NewMigrator(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := m.Up(); err != nil {
			m.Close() //nolint:errcheck // close error is secondary to the migration failure
			return nil, nil, err
		}
		if err := m.Close(); err != nil {
			return nil, nil, err
		}
	}

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	st := world.Store{
		Worlds:      postgres.NewWorldRepository(pool),
		Locations:   postgres.NewLocationRepository(pool),
		Connections: postgres.NewConnectionRepository(pool),
		Structures:  postgres.NewStructureRepository(pool),
		Population:  postgres.NewPopulationRepository(pool),
		Items:       postgres.NewItemRepository(pool),
		Shops:       postgres.NewShopRepository(pool),
	}
	generator, err := gen.NewGenerator(st, postgres.NewTransactor(pool),
		gen.WithMetrics(gen.NewMetrics()),
	)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	a := &app{cfg: cfg, pool: pool, generator: generator}
	return a, pool.Close, nil
}
