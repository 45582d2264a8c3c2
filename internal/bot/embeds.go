// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package bot

import (
	"math/rand"

	"github.com/bwmarrin/discordgo"
)

// EmbedKind selects the preset used for an embed.
type EmbedKind string

// Embed presets.
const (
	EmbedInfo         EmbedKind = "info"
	EmbedConfirmation EmbedKind = "confirmation"
	EmbedWarning      EmbedKind = "warning"
	EmbedError        EmbedKind = "error"
)

// Embed colours per kind.
const (
	colorInfo         = 0x5865f2
	colorConfirmation = 0x32a05a
	colorWarning      = 0xffcc4d
	colorError        = 0xdd2e44
)

// embedEmojis prefix the title of non-info embeds.
var embedEmojis = map[EmbedKind]string{
	EmbedConfirmation: "✅",
	EmbedWarning:      "⚠️",
	EmbedError:        "❌",
}

// embedTitles are random default titles per kind, used when no explicit
// title is given.
var embedTitles = map[EmbedKind][]string{
	EmbedConfirmation: {"Done!", "All set", "Success"},
	EmbedWarning:      {"Heads up", "Careful"},
	EmbedError:        {"Something went wrong", "That didn't work", "Oops"},
}

// EmbedOption customises a preset embed.
type EmbedOption func(*discordgo.MessageEmbed)

// WithTitle sets an explicit title.
func WithTitle(title string) EmbedOption {
	return func(e *discordgo.MessageEmbed) {
		e.Title = title
	}
}

// WithURL sets the title link.
func WithURL(url string) EmbedOption {
	return func(e *discordgo.MessageEmbed) {
		e.URL = url
	}
}

// WithThumbnail sets the thumbnail image URL.
func WithThumbnail(url string) EmbedOption {
	return func(e *discordgo.MessageEmbed) {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: url}
	}
}

// WithField appends a non-inline field.
func WithField(name, value string) EmbedOption {
	return func(e *discordgo.MessageEmbed) {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: value,
		})
	}
}

// NewEmbed builds an embed with the kind's colour preset. Confirmation,
// warning, and error embeds get an emoji-prefixed title, randomly chosen
// when none is set explicitly.
func NewEmbed(kind EmbedKind, description string, opts ...EmbedOption) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Description: description}

	switch kind {
	case EmbedConfirmation:
		embed.Color = colorConfirmation
	case EmbedWarning:
		embed.Color = colorWarning
	case EmbedError:
		embed.Color = colorError
	default:
		embed.Color = colorInfo
	}

	for _, opt := range opts {
		opt(embed)
	}

	if kind != EmbedInfo {
		title := embed.Title
		if title == "" {
			titles := embedTitles[kind]
			title = titles[rand.Intn(len(titles))] //nolint:gosec // cosmetic title choice
		}
		embed.Title = embedEmojis[kind] + "  " + title
	}

	return embed
}
