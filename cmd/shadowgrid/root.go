package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the ShadowGrid CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shadowgrid",
		Short: "ShadowGrid - procedural cyberpunk world generator",
		Long: `ShadowGrid generates complete, reproducible cyberpunk RPG worlds:
cities, districts, transport links, buildings, networks, inhabitants,
missions, items, and stocked shops, all derived from a single seed.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Config override flags, named after their config keys
	cmd.PersistentFlags().String("log.level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log.format", "", "log format (text, json)")
	cmd.PersistentFlags().String("database.url", "", "PostgreSQL connection string")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewRestockCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewWorldsCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}
