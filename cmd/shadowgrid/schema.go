// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/shadowgrid/shadowgrid/internal/config"
)

// NewSchemaCmd creates the config-schema subcommand.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-schema",
		Short: "Print the JSON Schema for configuration files",
		Long: `Print the JSON Schema that shadowgrid.yaml files are validated
against. Useful for editor integration and CI validation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			cmd.Println(string(data))
			return nil
		},
	}
}
