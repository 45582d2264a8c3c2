// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glyphbot/glyphbot/internal/extension"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [registry-file]",
		Short: "Validate an extensions registry file without starting the bot",
		Long: `Validates an extensions registry YAML file against the schema and
the registry invariants (id format, root prefix, semver versions).
Exits with code 0 on success, non-zero on failure.

Useful in CI pipelines to catch registry errors early:
  glyphbot validate extensions.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "extensions.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			return runValidate(cmd, path)
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}

	if err := extension.ValidateSchema(data); err != nil {
		return fmt.Errorf("schema validation failed:\n%s", extension.FormatSchemaError(err))
	}

	registry, err := extension.ParseRegistry(data)
	if err != nil {
		return fmt.Errorf("registry invalid: %w", err)
	}

	cmd.Printf("registry valid: %d extensions under root %q (%d protected)\n",
		len(registry.Extensions), registry.Root, len(registry.Protected()))
	return nil
}
