// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/oops"

	"github.com/glyphbot/glyphbot/internal/extension"
	"github.com/glyphbot/glyphbot/pkg/errutil"
)

// CodeNotOwner is the error code for admin commands invoked by non-owners.
const CodeNotOwner = "NOT_OWNER"

// ErrNotOwner creates an error for an admin command used by a non-owner.
func ErrNotOwner(userID string) error {
	return oops.Code(CodeNotOwner).
		With("user_id", userID).
		Errorf("user is not a bot owner")
}

// HandleInteraction routes an application command interaction to its cog
// handler. Handler errors never propagate: they are logged and answered with
// an error embed.
func (h *CogHost) HandleInteraction(ctx context.Context, s Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	start := time.Now()

	entry, ok := h.registry.Get(name)
	if !ok {
		slog.Warn("interaction for unregistered command", "command", name)
		RecordInteraction(name, StatusNotFound)
		h.respondError(s, i, "Unknown command.")
		return
	}

	if err := entry.Handler(ctx, s, i); err != nil {
		errutil.LogError(slog.Default(), "command failed", err)
		RecordInteraction(name, StatusError)
		h.respondError(s, i, UserMessage(err))
		return
	}

	RecordInteraction(name, StatusSuccess)
	ObserveInteraction(name, time.Since(start))
}

// respondError answers an interaction with an error embed. Send failures are
// logged only; there is nothing else to do with them.
func (h *CogHost) respondError(s Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{NewEmbed(EmbedError, msg)},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		slog.Warn("failed to send error response", "error", err)
	}
}

// UserMessage extracts a user-facing message from an error.
func UserMessage(err error) string {
	const fallback = "Something went wrong. Try again."
	if err == nil {
		return fallback
	}
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return fallback
	}

	switch oopsErr.Code() {
	case "UNKNOWN_EMOJI":
		return "Please include a valid emoji or emoji codepoint."
	case "BAD_URL":
		return "The given URL is invalid."
	case "DOWNLOAD_FAILED":
		return "The given URL can't be accessed."
	case "TOO_LARGE":
		return "The file at the given URL is too large."
	case "BAD_IMAGE":
		return "The given URL leads to an invalid image."
	case "BAD_SVG":
		return "The provided URL returns an invalid SVG."
	case CodeNotOwner:
		return "Only the bot owner can use this command."
	case extension.CodeProtected:
		blocked := extension.BlockedUnits(err)
		return "The following extension(s) may not be unloaded:```\n" +
			strings.Join(blocked, "\n") + "```"
	default:
		return fallback
	}
}
