// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package cogs

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/imaging"
)

// embedDisclaimer prefixes /embed output for invokers who are not bot
// owners, so a crafted embed cannot pass as an official bot message.
const embedDisclaimer = "⚠️  **This embed is not an official bot message**"

// DiscordCog exposes Discord asset helpers: user avatars and ad-hoc embeds.
type DiscordCog struct {
	owners map[string]struct{}
}

// NewDiscordCog creates the cog. owners are the Discord user ids exempt from
// the embed disclaimer.
func NewDiscordCog(owners []string) *DiscordCog {
	set := make(map[string]struct{}, len(owners))
	for _, id := range owners {
		set[id] = struct{}{}
	}
	return &DiscordCog{owners: set}
}

// Name returns the cog's extension id.
func (c *DiscordCog) Name() string { return IDDiscord }

// Commands declares the /avatar and /embed commands.
func (c *DiscordCog) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "avatar",
			Description: "Show a user's avatar at full size",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user whose avatar to show",
				Required:    true,
			}},
		},
		{
			Name:        "embed",
			Description: "Build a custom embed",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "title",
					Description: "Embed title",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "description",
					Description: "Embed body text",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "color",
					Description: "Hex color like #5865F2",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "thumbnail",
					Description: "Thumbnail image URL",
				},
			},
		},
	}
}

// Handlers maps command names to handlers.
func (c *DiscordCog) Handlers() map[string]bot.Handler {
	return map[string]bot.Handler{
		"avatar": c.handleAvatar,
		"embed":  c.handleEmbed,
	}
}

func (c *DiscordCog) handleAvatar(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	userID, _ := data.Options[0].Value.(string)

	var user *discordgo.User
	if data.Resolved != nil {
		user = data.Resolved.Users[userID]
	}
	if user == nil {
		return respond(s, i, bot.NewEmbed(bot.EmbedError, "Could not resolve that user."))
	}

	url := user.AvatarURL("1024")
	return respond(s, i, bot.NewEmbed(bot.EmbedInfo,
		fmt.Sprintf("[Download](%s)", url),
		bot.WithTitle(user.Username),
		bot.WithURL(url),
		bot.WithThumbnail(url),
	))
}

func (c *DiscordCog) handleEmbed(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()

	embed := &discordgo.MessageEmbed{}
	for _, opt := range data.Options {
		switch opt.Name {
		case "title":
			embed.Title = opt.StringValue()
		case "description":
			embed.Description = opt.StringValue()
		case "color":
			c, err := imaging.ParseHexColor(opt.StringValue())
			if err != nil {
				return err
			}
			embed.Color = int(c.R)<<16 | int(c.G)<<8 | int(c.B)
		case "thumbnail":
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: opt.StringValue()}
		}
	}

	content := ""
	if user := interactionUser(i); user == nil || !c.isOwner(user.ID) {
		content = embedDisclaimer
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Embeds:  []*discordgo.MessageEmbed{embed},
		},
	})
}

func (c *DiscordCog) isOwner(userID string) bool {
	_, ok := c.owners[userID]
	return ok
}
