// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

// Package bot hosts cogs on a Discord session: it owns the extension load
// table, registers application commands, and dispatches interactions.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Handler processes one application command interaction.
type Handler func(ctx context.Context, s Session, i *discordgo.InteractionCreate) error

// Cog is an independently loadable bot extension. A cog declares the
// application commands it owns and a handler per command name.
type Cog interface {
	// Name returns the cog's dotted extension id, e.g. "cogs.emojis.twemoji".
	Name() string
	// Commands returns the application commands this cog registers when loaded.
	Commands() []*discordgo.ApplicationCommand
	// Handlers maps command names to their handlers. Every command returned
	// by Commands must have a handler under the same name.
	Handlers() map[string]Handler
}

// CogFactory constructs a fresh cog instance. Reload discards the old
// instance and builds a new one, so factories must not share mutable state
// between instances.
type CogFactory func() Cog

// Session is the slice of discordgo.Session the host needs. Kept narrow so
// tests can substitute a fake.
type Session interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}
