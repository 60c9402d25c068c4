// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// Default timeout for the restock command.
const defaultRestockTimeout = 30 * time.Second

// restockConfig holds configuration for the restock command.
type restockConfig struct {
	seed    int64
	timeout time.Duration
}

// NewRestockCmd creates the restock subcommand.
func NewRestockCmd() *cobra.Command {
	cfg := &restockConfig{}

	cmd := &cobra.Command{
		Use:   "restock <world-id> <shop-id>",
		Short: "Clear and regenerate a shop's inventory",
		Long: `Clear a shop's inventory and stock it again. Without --seed a fresh
seed is drawn, so each restock offers different goods.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestock(cmd, args, cfg)
		},
	}

	cmd.Flags().Int64Var(&cfg.seed, "seed", 0, "restock seed (omit for a random seed)")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultRestockTimeout, "timeout for the restock")

	return cmd
}

func runRestock(cmd *cobra.Command, args []string, cfg *restockConfig) error {
	worldID, err := ulid.Parse(args[0])
	if err != nil {
		return oops.Code("INVALID_ARGUMENT").With("world_id", args[0]).Wrapf(err, "parsing world ID")
	}
	shopID, err := ulid.Parse(args[1])
	if err != nil {
		return oops.Code("INVALID_ARGUMENT").With("shop_id", args[1]).Wrapf(err, "parsing shop ID")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, cleanup, err := initApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var seed *int64
	if cmd.Flags().Changed("seed") {
		seed = &cfg.seed
	}
	if err := a.generator.RestockShop(ctx, worldID, shopID, seed); err != nil {
		return err
	}

	cmd.Printf("Shop %s restocked\n", shopID)
	return nil
}
