// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package cogs_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/cogs"
	"github.com/glyphbot/glyphbot/internal/emoji"
	"github.com/glyphbot/glyphbot/internal/extension"
	"github.com/glyphbot/glyphbot/pkg/errutil"
)

// fakeSession records interaction responses.
type fakeSession struct {
	mu        sync.Mutex
	responses []*discordgo.InteractionResponse
}

func (s *fakeSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	return cmd, nil
}

func (s *fakeSession) ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error {
	return nil
}

func (s *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
	return nil
}

func (s *fakeSession) lastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	require.NotEmpty(t, s.lastData(t).Embeds)
	return s.lastData(t).Embeds[0]
}

func (s *fakeSession) lastData(t *testing.T) *discordgo.InteractionResponseData {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.responses)
	return s.responses[len(s.responses)-1].Data
}

// fakeHost tracks loaded ids in memory.
type fakeHost struct {
	mu     sync.Mutex
	loaded map[string]struct{}
}

func newFakeHost(ids ...string) *fakeHost {
	h := &fakeHost{loaded: make(map[string]struct{})}
	for _, id := range ids {
		h.loaded[id] = struct{}{}
	}
	return h
}

func (h *fakeHost) Load(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.loaded[id]; ok {
		return extension.ErrAlreadyLoaded(id)
	}
	h.loaded[id] = struct{}{}
	return nil
}

func (h *fakeHost) Unload(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.loaded[id]; !ok {
		return extension.ErrNotLoaded(id)
	}
	delete(h.loaded, id)
	return nil
}

func (h *fakeHost) Reload(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.loaded[id]; !ok {
		return extension.ErrNotLoaded(id)
	}
	return nil
}

func (h *fakeHost) Loaded() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.loaded))
	for id := range h.loaded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func testRegistry() *extension.Registry {
	return &extension.Registry{
		Root: "cogs",
		Extensions: []extension.Entry{
			{ID: cogs.IDExtensions, Version: "1.0.0", Protected: true},
			{ID: cogs.IDTwemoji, Version: "1.0.0"},
			{ID: cogs.IDNoto, Version: "1.0.0"},
			{ID: cogs.IDPreview, Version: "1.0.0"},
		},
	}
}

// commandInteraction builds a subcommand interaction invoked by userID.
func commandInteraction(command, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    command,
			Options: opts,
		},
		Member: &discordgo.Member{User: &discordgo.User{ID: userID}},
	}}
}

func subOption(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: opts,
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func TestExtensionsCog_RejectsNonOwner(t *testing.T) {
	manager := extension.NewManager(testRegistry(), newFakeHost())
	cog := cogs.NewExtensionsCog(manager, []string{"owner"})

	i := commandInteraction("extensions", "stranger", subOption("list"))
	err := cog.Handlers()["extensions"](context.Background(), &fakeSession{}, i)

	errutil.AssertErrorCode(t, err, bot.CodeNotOwner)
}

func TestExtensionsCog_LoadSingle(t *testing.T) {
	manager := extension.NewManager(testRegistry(), newFakeHost(cogs.IDExtensions))
	cog := cogs.NewExtensionsCog(manager, []string{"owner"})
	session := &fakeSession{}

	i := commandInteraction("extensions", "owner",
		subOption("load", stringOption("extensions", cogs.IDTwemoji)))
	err := cog.Handlers()["extensions"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	assert.Contains(t, embed.Description, "Extension successfully loaded: `cogs.emojis.twemoji`.")
}

func TestExtensionsCog_LoadWildcard(t *testing.T) {
	host := newFakeHost(cogs.IDExtensions)
	manager := extension.NewManager(testRegistry(), host)
	cog := cogs.NewExtensionsCog(manager, []string{"owner"})
	session := &fakeSession{}

	i := commandInteraction("extensions", "owner",
		subOption("load", stringOption("extensions", "*")))
	err := cog.Handlers()["extensions"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	assert.Contains(t, embed.Description, "3 / 3 extensions loaded.")
	assert.Len(t, host.Loaded(), 4)
}

func TestExtensionsCog_UnloadProtectedAborts(t *testing.T) {
	host := newFakeHost(cogs.IDExtensions, cogs.IDTwemoji)
	manager := extension.NewManager(testRegistry(), host)
	cog := cogs.NewExtensionsCog(manager, []string{"owner"})
	session := &fakeSession{}

	i := commandInteraction("extensions", "owner",
		subOption("unload", stringOption("extensions", cogs.IDExtensions+" "+cogs.IDTwemoji)))
	err := cog.Handlers()["extensions"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	assert.Contains(t, embed.Description, cogs.IDExtensions)
	// Nothing was unloaded, the whole request is refused.
	assert.Len(t, host.Loaded(), 2)
}

func TestExtensionsCog_EmptyArgs(t *testing.T) {
	manager := extension.NewManager(testRegistry(), newFakeHost())
	cog := cogs.NewExtensionsCog(manager, []string{"owner"})
	session := &fakeSession{}

	i := commandInteraction("extensions", "owner",
		subOption("reload", stringOption("extensions", "   ")))
	err := cog.Handlers()["extensions"](context.Background(), session, i)

	require.NoError(t, err)
	assert.Contains(t, session.lastEmbed(t).Description, "reload")
}

func TestExtensionsCog_List(t *testing.T) {
	host := newFakeHost(cogs.IDExtensions, cogs.IDTwemoji)
	manager := extension.NewManager(testRegistry(), host)
	cog := cogs.NewExtensionsCog(manager, []string{"owner"})
	session := &fakeSession{}

	i := commandInteraction("extensions", "owner", subOption("list"))
	err := cog.Handlers()["extensions"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	assert.Equal(t, "Extensions (4)", embed.Title)
	assert.Contains(t, embed.Description, "**Emojis**")
	assert.Contains(t, embed.Description, "🟢  twemoji")
	assert.Contains(t, embed.Description, "⚫  noto")
}

func TestTwemojiCog_Preview(t *testing.T) {
	cog := cogs.NewTwemojiCog(emoji.NewTwemojiSource())
	session := &fakeSession{}

	i := commandInteraction("twemoji", "anyone", stringOption("emoji", "🦊"))
	err := cog.Handlers()["twemoji"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	assert.Equal(t, "Fox", embed.Title)
	assert.Contains(t, embed.Description, "1F98A")
	require.NotNil(t, embed.Thumbnail)
	assert.True(t, strings.HasSuffix(embed.Thumbnail.URL, "/1f98a.png"),
		"thumbnail %q", embed.Thumbnail.URL)
	assert.Contains(t, embed.Description, "1f98a.svg")
}

func TestTwemojiCog_UnknownInput(t *testing.T) {
	cog := cogs.NewTwemojiCog(emoji.NewTwemojiSource())

	i := commandInteraction("twemoji", "anyone", stringOption("emoji", "not an emoji"))
	err := cog.Handlers()["twemoji"](context.Background(), &fakeSession{}, i)

	errutil.AssertErrorCode(t, err, emoji.CodeUnknownEmoji)
}

func TestNotoCog_Preview(t *testing.T) {
	cog := cogs.NewNotoCog(emoji.NewNotoSource())
	session := &fakeSession{}

	i := commandInteraction("noto", "anyone", stringOption("emoji", "1f98a"))
	err := cog.Handlers()["noto"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	require.NotNil(t, embed.Thumbnail)
	assert.Contains(t, embed.Thumbnail.URL, "emoji_u1f98a.png")
	assert.Contains(t, embed.Thumbnail.URL, "/128/")
}

func TestDiscordCog_EmbedBuilder(t *testing.T) {
	cog := cogs.NewDiscordCog([]string{"owner-1"})
	session := &fakeSession{}

	i := commandInteraction("embed", "owner-1",
		stringOption("title", "Hello"),
		stringOption("description", "World"),
		stringOption("color", "#5865F2"),
	)
	err := cog.Handlers()["embed"](context.Background(), session, i)

	require.NoError(t, err)
	embed := session.lastEmbed(t)
	assert.Equal(t, "Hello", embed.Title)
	assert.Equal(t, "World", embed.Description)
	assert.Equal(t, 0x5865F2, embed.Color)
	assert.Empty(t, session.lastData(t).Content, "owner embeds carry no disclaimer")
}

func TestDiscordCog_EmbedDisclaimerForNonOwner(t *testing.T) {
	cog := cogs.NewDiscordCog([]string{"owner-1"})
	session := &fakeSession{}

	i := commandInteraction("embed", "someone-else",
		stringOption("title", "Hello"),
		stringOption("description", "World"),
	)
	err := cog.Handlers()["embed"](context.Background(), session, i)

	require.NoError(t, err)
	assert.Contains(t, session.lastData(t).Content, "not an official bot message")
	assert.Equal(t, "Hello", session.lastEmbed(t).Title)
}

func TestDiscordCog_AvatarUnresolvedUser(t *testing.T) {
	cog := cogs.NewDiscordCog(nil)
	session := &fakeSession{}

	i := commandInteraction("avatar", "anyone", &discordgo.ApplicationCommandInteractionDataOption{
		Name:  "user",
		Type:  discordgo.ApplicationCommandOptionUser,
		Value: "12345",
	})
	err := cog.Handlers()["avatar"](context.Background(), session, i)

	require.NoError(t, err)
	assert.Contains(t, session.lastEmbed(t).Description, "Could not resolve")
}
