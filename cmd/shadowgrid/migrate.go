// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shadowgrid/shadowgrid/internal/store"
)

// migrateConfig holds configuration for the migrate command.
type migrateConfig struct {
	down    bool
	steps   int
	version bool
	force   int
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cfg := &migrateConfig{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Run all pending database migrations against the PostgreSQL database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.down, "down", false, "roll back all migrations instead of applying them")
	cmd.Flags().IntVar(&cfg.steps, "steps", 0, "apply exactly n migrations (negative rolls back)")
	cmd.Flags().BoolVar(&cfg.version, "version", false, "print the current migration version and exit")
	cmd.Flags().IntVar(&cfg.force, "force", -1, "force the schema version without running migrations (repairs a dirty state)")

	return cmd
}

func runMigrate(cmd *cobra.Command, cfg *migrateConfig) error {
	appCfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if appCfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("database URL is required (config file, --database.url, or DATABASE_URL)")
	}

	m, err := store.NewMigrator(appCfg.Database.URL)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck // close error is secondary

	switch {
	case cfg.version:
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		if version == 0 {
			cmd.Println("No migrations applied")
			return nil
		}
		cmd.Printf("Version: %d (dirty: %v)\n", version, dirty)
		return nil
	case cfg.force >= 0:
		cmd.Printf("Forcing schema version %d...\n", cfg.force)
		if err := m.Force(cfg.force); err != nil {
			return err
		}
		cmd.Println("Schema version forced")
		return nil
	case cfg.steps != 0:
		cmd.Printf("Applying %d migration step(s)...\n", cfg.steps)
		if err := m.Steps(cfg.steps); err != nil {
			return err
		}
	case cfg.down:
		cmd.Println("Rolling back all migrations...")
		if err := m.Down(); err != nil {
			return err
		}
	default:
		cmd.Println("Running migrations...")
		if err := m.Up(); err != nil {
			return err
		}
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
