// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the glyphbot CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyphbot",
		Short: "Glyphbot - an emoji asset Discord bot",
		Long: `Glyphbot is a Discord bot for previewing emoji assets from the
Twemoji and Noto sets, with live extension management.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewValidateCmd())

	return cmd
}
