// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package cogs

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/emoji"
)

// TwemojiCog previews Twitter's emoji set.
type TwemojiCog struct {
	source emoji.TwemojiSource
}

// NewTwemojiCog creates the cog with the given asset source.
func NewTwemojiCog(source emoji.TwemojiSource) *TwemojiCog {
	return &TwemojiCog{source: source}
}

// Name returns the cog's extension id.
func (c *TwemojiCog) Name() string { return IDTwemoji }

// Commands declares the /twemoji command.
func (c *TwemojiCog) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{{
		Name:        "twemoji",
		Description: "Preview a Twemoji by emoji or hexadecimal codepoint",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "emoji",
			Description: "An emoji, or space-separated codepoints like 1f98a",
			Required:    true,
		}},
	}}
}

// Handlers maps command names to handlers.
func (c *TwemojiCog) Handlers() map[string]bot.Handler {
	return map[string]bot.Handler{"twemoji": c.handle}
}

func (c *TwemojiCog) handle(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate) error {
	raw := i.ApplicationCommandData().Options[0].StringValue()
	codepoint, err := emoji.FromInput(raw)
	if err != nil {
		return err
	}

	embed := emojiEmbed(codepoint,
		c.source.URL(codepoint, emoji.FormatPNG),
		c.source.URL(codepoint, emoji.FormatSVG))
	return respond(s, i, embed)
}

// emojiEmbed builds the shared preview embed: name as title, codepoints and
// a vector download link as description, the raster asset as thumbnail.
func emojiEmbed(codepoint, thumbURL, vectorURL string) *discordgo.MessageEmbed {
	glyph := glyphOf(codepoint)
	description := strings.ToUpper(strings.ReplaceAll(codepoint, "-", " "))
	if vectorURL != "" {
		description += fmt.Sprintf("\n[Download svg](%s)", vectorURL)
	}
	return bot.NewEmbed(bot.EmbedInfo, description,
		bot.WithTitle(emoji.Name(glyph)),
		bot.WithURL(thumbURL),
		bot.WithThumbnail(thumbURL),
	)
}

// glyphOf reassembles the emoji glyph from a canonical codepoint string.
func glyphOf(codepoint string) string {
	var b strings.Builder
	for _, part := range strings.Split(codepoint, "-") {
		b.WriteString(emoji.Glyph(part))
	}
	return b.String()
}
