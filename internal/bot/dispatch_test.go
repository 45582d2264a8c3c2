// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package bot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/emoji"
	"github.com/glyphbot/glyphbot/internal/extension"
	"github.com/glyphbot/glyphbot/internal/imaging"
)

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{Name: name},
		},
	}
}

func TestHandleInteraction_DispatchesToHandler(t *testing.T) {
	session := newFakeSession()
	host := bot.NewCogHost(session, "app", "guild")

	var handled bool
	host.RegisterFactory("cogs.test", func() bot.Cog {
		return &testCog{
			name:    "cogs.test",
			command: "ping",
			handler: func(context.Context, bot.Session, *discordgo.InteractionCreate) error {
				handled = true
				return nil
			},
		}
	})
	require.NoError(t, host.Load(context.Background(), "cogs.test"))

	host.HandleInteraction(context.Background(), session, commandInteraction("ping"))

	assert.True(t, handled)
	assert.Empty(t, session.responses, "successful handlers answer for themselves")
}

func TestHandleInteraction_HandlerErrorAnswersWithEmbed(t *testing.T) {
	session := newFakeSession()
	host := bot.NewCogHost(session, "app", "guild")
	host.RegisterFactory("cogs.test", func() bot.Cog {
		return &testCog{
			name:    "cogs.test",
			command: "boom",
			handler: func(context.Context, bot.Session, *discordgo.InteractionCreate) error {
				return errors.New("kaput")
			},
		}
	})
	require.NoError(t, host.Load(context.Background(), "cogs.test"))

	host.HandleInteraction(context.Background(), session, commandInteraction("boom"))

	require.Len(t, session.responses, 1)
	embeds := session.responses[0].Data.Embeds
	require.Len(t, embeds, 1)
	assert.Contains(t, embeds[0].Title, "❌")
}

func TestHandleInteraction_UnknownCommand(t *testing.T) {
	session := newFakeSession()
	host := bot.NewCogHost(session, "app", "guild")

	host.HandleInteraction(context.Background(), session, commandInteraction("ghost"))

	require.Len(t, session.responses, 1)
	assert.Contains(t, session.responses[0].Data.Embeds[0].Description, "Unknown command")
}

func TestHandleInteraction_IgnoresNonCommandInteractions(t *testing.T) {
	session := newFakeSession()
	host := bot.NewCogHost(session, "app", "guild")

	host.HandleInteraction(context.Background(), session, &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{Type: discordgo.InteractionMessageComponent},
	})

	assert.Empty(t, session.responses)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "Something went wrong. Try again."},
		{"plain", errors.New("x"), "Something went wrong. Try again."},
		{
			"unknown_emoji",
			func() error { _, err := emoji.FromInput("junk"); return err }(),
			"Please include a valid emoji or emoji codepoint.",
		},
		{"bad_url", imaging.ErrBadURL("x", nil), "The given URL is invalid."},
		{"download", imaging.ErrDownloadFailed("x", 404), "The given URL can't be accessed."},
		{"bad_image", imaging.ErrBadImage(errors.New("x")), "The given URL leads to an invalid image."},
		{"not_owner", bot.ErrNotOwner("123"), "Only the bot owner can use this command."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bot.UserMessage(tt.err))
		})
	}
}

func TestUserMessage_Protected(t *testing.T) {
	err := extension.ErrProtected([]string{"cogs.extensions"})
	msg := bot.UserMessage(err)
	assert.Contains(t, msg, "may not be unloaded")
	assert.Contains(t, msg, "cogs.extensions")
}
