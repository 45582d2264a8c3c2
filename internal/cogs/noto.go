// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package cogs

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/emoji"
)

// NotoCog previews Google's Noto emoji set.
type NotoCog struct {
	source emoji.NotoSource
}

// NewNotoCog creates the cog with the given asset source.
func NewNotoCog(source emoji.NotoSource) *NotoCog {
	return &NotoCog{source: source}
}

// Name returns the cog's extension id.
func (c *NotoCog) Name() string { return IDNoto }

// Commands declares the /noto command.
func (c *NotoCog) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{{
		Name:        "noto",
		Description: "Preview a Noto emoji by emoji or hexadecimal codepoint",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "emoji",
			Description: "An emoji, or space-separated codepoints like 1f98a",
			Required:    true,
		}},
	}}
}

// Handlers maps command names to handlers.
func (c *NotoCog) Handlers() map[string]bot.Handler {
	return map[string]bot.Handler{"noto": c.handle}
}

func (c *NotoCog) handle(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate) error {
	raw := i.ApplicationCommandData().Options[0].StringValue()
	codepoint, err := emoji.FromInput(raw)
	if err != nil {
		return err
	}

	embed := emojiEmbed(codepoint,
		c.source.URL(codepoint, emoji.FormatPNG, emoji.NotoSize128),
		c.source.URL(codepoint, emoji.FormatSVG, 0))
	return respond(s, i, embed)
}
