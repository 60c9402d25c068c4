// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// Default timeout for the delete command.
const defaultDeleteTimeout = 30 * time.Second

// deleteConfig holds configuration for the delete command.
type deleteConfig struct {
	force   bool
	timeout time.Duration
}

// NewDeleteCmd creates the delete subcommand.
func NewDeleteCmd() *cobra.Command {
	cfg := &deleteConfig{}

	cmd := &cobra.Command{
		Use:   "delete <world-id>",
		Short: "Delete a world and everything it owns",
		Long: `Delete a world. The schema cascades the delete to every location,
building, character, item, and shop the world owns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.force, "force", false, "delete without confirmation")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultDeleteTimeout, "timeout for the delete")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string, cfg *deleteConfig) error {
	worldID, err := ulid.Parse(args[0])
	if err != nil {
		return oops.Code("INVALID_ARGUMENT").With("world_id", args[0]).Wrapf(err, "parsing world ID")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	a, cleanup, err := initApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	w, err := a.generator.GetWorld(ctx, worldID)
	if err != nil {
		return err
	}
	if !cfg.force {
		cmd.Printf("This will permanently delete world %q (%s) and everything in it.\n", w.Name, w.ID)
		cmd.Print("Type the world name to confirm: ")
		var confirm string
		if _, err := fmt.Fscanln(cmd.InOrStdin(), &confirm); err != nil || confirm != w.Name {
			return oops.Code("DELETE_ABORTED").Errorf("confirmation did not match world name")
		}
	}

	if err := a.generator.DeleteWorld(ctx, worldID); err != nil {
		return err
	}

	cmd.Printf("World %q deleted\n", w.Name)
	return nil
}
