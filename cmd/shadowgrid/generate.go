// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/shadowgrid/shadowgrid/internal/gen"
	"github.com/shadowgrid/shadowgrid/internal/observability"
	"github.com/shadowgrid/shadowgrid/pkg/errutil"
)

// Default timeout for a full generation run.
const defaultGenerateTimeout = 5 * time.Minute

// generateConfig holds configuration for the generate command.
type generateConfig struct {
	name       string
	author     string
	complexity int
	seed       int64
	timeout    time.Duration
}

// NewGenerateCmd creates the generate subcommand.
func NewGenerateCmd() *cobra.Command {
	cfg := &generateConfig{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new world",
		Long: `Generate a complete world from a seed. All entities are written in a
single transaction: a failed run leaves nothing behind. With no --seed a
fresh one is drawn and reported, so any run can be reproduced later.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.name, "name", "", "world name (required)")
	cmd.Flags().StringVar(&cfg.author, "author", "", "author recorded on the world")
	cmd.Flags().IntVar(&cfg.complexity, "complexity", 0, "world complexity 1-5 (default from config)")
	cmd.Flags().Int64Var(&cfg.seed, "seed", 0, "generation seed (omit for a random seed)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultGenerateTimeout, "timeout for the generation run")
	cmd.MarkFlagRequired("name") //nolint:errcheck // flag exists

	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string, cfg *generateConfig) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, cleanup, err := initApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Expose metrics for the duration of the run when configured.
	if a.cfg.Observability.Enabled {
		obs := observability.NewServer(a.cfg.Observability.Addr, nil)
		errCh, err := obs.Start()
		if err != nil {
			return err
		}
		go func() {
			if serveErr := <-errCh; serveErr != nil {
				errutil.LogError(slog.Default(), "observability server failed", serveErr)
			}
		}()
		defer obs.Stop(context.Background()) //nolint:errcheck // shutdown error is not actionable here
	}

	req := gen.GenerateRequest{
		Name:       cfg.name,
		Author:     cfg.author,
		Complexity: cfg.complexity,
	}
	if req.Complexity == 0 {
		req.Complexity = a.cfg.Generation.DefaultComplexity
	}
	if cmd.Flags().Changed("seed") {
		seed := cfg.seed
		req.Seed = &seed
	}

	worldID, err := a.generator.GenerateWorld(ctx, req)
	if err != nil {
		return err
	}

	created, err := a.generator.GetWorld(ctx, worldID)
	if err != nil {
		cmd.Printf("World generated: %s\n", worldID)
		return nil
	}
	cmd.Printf("World %q generated\n", created.Name)
	cmd.Printf("  id:         %s\n", created.ID)
	cmd.Printf("  seed:       %d\n", created.Seed)
	cmd.Printf("  complexity: %d\n", created.Complexity)
	return nil
}
