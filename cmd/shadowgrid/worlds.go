// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// Default timeout for the worlds command.
const defaultWorldsTimeout = 30 * time.Second

// WorldStatus is one row of the worlds listing.
type WorldStatus struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Author     string    `json:"author,omitempty"`
	Seed       int64     `json:"seed"`
	Complexity int       `json:"complexity"`
	CreatedAt  time.Time `json:"created_at"`
}

// worldsConfig holds configuration for the worlds command.
type worldsConfig struct {
	jsonOutput bool
	timeout    time.Duration
}

// NewWorldsCmd creates the worlds subcommand.
func NewWorldsCmd() *cobra.Command {
	cfg := &worldsConfig{}

	cmd := &cobra.Command{
		Use:   "worlds",
		Short: "List generated worlds",
		Long:  `List every generated world with its seed and complexity, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorlds(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output as JSON")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultWorldsTimeout, "timeout for the listing")

	return cmd
}

func runWorlds(cmd *cobra.Command, cfg *worldsConfig) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, cleanup, err := initApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	worlds, err := a.generator.ListWorlds(ctx)
	if err != nil {
		return err
	}

	statuses := make([]WorldStatus, 0, len(worlds))
	for _, w := range worlds {
		statuses = append(statuses, WorldStatus{
			ID:         w.ID.String(),
			Name:       w.Name,
			Author:     w.Author,
			Seed:       w.Seed,
			Complexity: w.Complexity,
			CreatedAt:  w.CreatedAt,
		})
	}

	if cfg.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSEED\tCOMPLEXITY\tCREATED")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			s.ID, s.Name, s.Seed, s.Complexity, s.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
