// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

// Package cogs contains the bot's built-in extensions.
package cogs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/extension"
)

// Extension ids for the built-in cogs.
const (
	IDExtensions = "cogs.extensions"
	IDTwemoji    = "cogs.emojis.twemoji"
	IDNoto       = "cogs.emojis.noto"
	IDPreview    = "cogs.previewing.preview"
	IDDiscord    = "cogs.discord.assets"
)

// descriptionLimit caps one listing page. Longer listings span multiple embeds.
const descriptionLimit = 2048

// ExtensionsCog provides the owner-only extension management commands.
type ExtensionsCog struct {
	manager *extension.Manager
	owners  map[string]struct{}
}

// NewExtensionsCog creates the management cog. owners are the Discord user
// ids allowed to invoke it.
func NewExtensionsCog(manager *extension.Manager, owners []string) *ExtensionsCog {
	set := make(map[string]struct{}, len(owners))
	for _, id := range owners {
		set[id] = struct{}{}
	}
	return &ExtensionsCog{manager: manager, owners: set}
}

// Name returns the cog's extension id.
func (c *ExtensionsCog) Name() string { return IDExtensions }

// Commands declares the /extensions command group.
func (c *ExtensionsCog) Commands() []*discordgo.ApplicationCommand {
	unitsOption := func() *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "extensions",
			Description: "Extension names, '*' for relevant, or '**' for all",
			Required:    true,
		}
	}

	return []*discordgo.ApplicationCommand{{
		Name:        "extensions",
		Description: "Load, unload, reload, and list bot extensions",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "load",
				Description: "Load extensions by name or wildcard",
				Options:     []*discordgo.ApplicationCommandOption{unitsOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "unload",
				Description: "Unload extensions by name or wildcard",
				Options:     []*discordgo.ApplicationCommandOption{unitsOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "reload",
				Description: "Reload extensions by name or wildcard",
				Options:     []*discordgo.ApplicationCommandOption{unitsOption()},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List all extensions and their loaded status",
			},
		},
	}}
}

// Handlers maps command names to handlers.
func (c *ExtensionsCog) Handlers() map[string]bot.Handler {
	return map[string]bot.Handler{"extensions": c.handle}
}

func (c *ExtensionsCog) handle(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate) error {
	if err := c.checkOwner(i); err != nil {
		return err
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return respond(s, i, bot.NewEmbed(bot.EmbedError, "Missing subcommand."))
	}
	sub := data.Options[0]

	switch sub.Name {
	case "list":
		return c.handleList(s, i)
	case "load", "unload", "reload":
		return c.handleAction(ctx, s, i, extension.Action(sub.Name), sub)
	default:
		return respond(s, i, bot.NewEmbed(bot.EmbedError, "Unknown subcommand."))
	}
}

func (c *ExtensionsCog) handleAction(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate, action extension.Action, sub *discordgo.ApplicationCommandInteractionDataOption) error {
	var args []string
	if len(sub.Options) > 0 {
		args = strings.Fields(sub.Options[0].StringValue())
	}
	if len(args) == 0 {
		return respond(s, i, bot.NewEmbed(bot.EmbedError,
			fmt.Sprintf("Please name the extensions to %s, or use `*`/`**`.", action.Verb())))
	}

	targets, err := c.manager.ResolveTargets(action, args)
	if err != nil {
		// Denylisted unload targets block the whole request before any
		// unit is touched.
		return respond(s, i, bot.NewEmbed(bot.EmbedError, bot.UserMessage(err)))
	}

	report := c.manager.ApplyBatch(ctx, action, targets)
	kind := bot.EmbedConfirmation
	if report.Failed() {
		kind = bot.EmbedError
	}
	return respond(s, i, bot.NewEmbed(kind, report.Message))
}

func (c *ExtensionsCog) handleList(s bot.Session, i *discordgo.InteractionCreate) error {
	groups := c.manager.GroupStatuses()

	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	// Each category is one line block so pagination never splits a category.
	lines := make([]string, 0, len(categories))
	total := 0
	for _, category := range categories {
		entries := groups[category]
		total += len(entries)
		lines = append(lines, fmt.Sprintf("**%s**\n%s\n",
			titleCase(category), strings.Join(entries, "\n")))
	}

	title := fmt.Sprintf("Extensions (%d)", total)
	embeds := make([]*discordgo.MessageEmbed, 0, 1)
	for _, page := range paginate(lines, descriptionLimit) {
		embeds = append(embeds, bot.NewEmbed(bot.EmbedInfo,
			strings.Join(page, "\n"), bot.WithTitle(title)))
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: embeds},
	})
}

func (c *ExtensionsCog) checkOwner(i *discordgo.InteractionCreate) error {
	user := interactionUser(i)
	if user == nil {
		return bot.ErrNotOwner("")
	}
	if _, ok := c.owners[user.ID]; !ok {
		return bot.ErrNotOwner(user.ID)
	}
	return nil
}

// paginate splits lines into pages whose joined length stays under limit.
// A single oversized line still gets its own page.
func paginate(lines []string, limit int) [][]string {
	var pages [][]string
	var page []string
	size := 0

	for _, line := range lines {
		if len(page) > 0 && size+len(line)+1 > limit {
			pages = append(pages, page)
			page, size = nil, 0
		}
		page = append(page, line)
		size += len(line) + 1
	}
	if len(page) > 0 {
		pages = append(pages, page)
	}
	return pages
}

// titleCase uppercases the first letter of every word, with underscores
// treated as spaces.
func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// interactionUser returns the invoking user for guild and DM interactions.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// respond answers an interaction with a single embed.
func respond(s bot.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
