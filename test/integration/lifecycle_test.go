// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/cogs"
	"github.com/glyphbot/glyphbot/internal/emoji"
	"github.com/glyphbot/glyphbot/internal/extension"
)

const registryYAML = `
root: cogs
extensions:
  - id: cogs.extensions
    version: 1.0.0
    description: Extension management commands
    protected: true
  - id: cogs.emojis.twemoji
    version: 1.0.0
  - id: cogs.emojis.noto
    version: 1.0.0
`

// recordingSession is an in-memory stand-in for the Discord REST API.
type recordingSession struct {
	mu        sync.Mutex
	nextID    int
	commands  map[string]string // command id -> name
	responses []*discordgo.InteractionResponse
}

func newRecordingSession() *recordingSession {
	return &recordingSession{commands: make(map[string]string)}
}

func (s *recordingSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	created := *cmd
	created.ID = fmt.Sprintf("cmd-%d", s.nextID)
	s.commands[created.ID] = cmd.Name
	return &created, nil
}

func (s *recordingSession) ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.commands, cmdID)
	return nil
}

func (s *recordingSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
	return nil
}

func (s *recordingSession) commandNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.commands))
	for _, name := range s.commands {
		names = append(names, name)
	}
	return names
}

func (s *recordingSession) lastResponse() *discordgo.InteractionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.responses) == 0 {
		return nil
	}
	return s.responses[len(s.responses)-1]
}

var _ = Describe("Extension lifecycle", func() {
	var (
		ctx      context.Context
		session  *recordingSession
		host     *bot.CogHost
		manager  *extension.Manager
		registry *extension.Registry
	)

	BeforeEach(func() {
		ctx = context.Background()
		session = newRecordingSession()

		var err error
		registry, err = extension.ParseRegistry([]byte(registryYAML))
		Expect(err).NotTo(HaveOccurred())

		host = bot.NewCogHost(session, "app-1", "guild-1")
		host.RegisterFactory(cogs.IDTwemoji, func() bot.Cog {
			return cogs.NewTwemojiCog(emoji.NewTwemojiSource())
		})
		host.RegisterFactory(cogs.IDNoto, func() bot.Cog {
			return cogs.NewNotoCog(emoji.NewNotoSource())
		})

		manager = extension.NewManager(registry, host,
			extension.WithDenylist(cogs.IDExtensions))
		host.RegisterFactory(cogs.IDExtensions, func() bot.Cog {
			return cogs.NewExtensionsCog(manager, []string{"owner-1"})
		})
	})

	loadAll := func() extension.BatchReport {
		targets, err := manager.ResolveTargets(extension.ActionLoad, []string{extension.WildcardAll})
		Expect(err).NotTo(HaveOccurred())
		return manager.ApplyBatch(ctx, extension.ActionLoad, targets)
	}

	It("loads every registered extension and registers its commands", func() {
		report := loadAll()

		Expect(report.Failed()).To(BeFalse())
		Expect(report.Message).To(ContainSubstring("3 / 3 extensions loaded."))
		Expect(host.Loaded()).To(ConsistOf(
			cogs.IDExtensions, cogs.IDNoto, cogs.IDTwemoji))
		Expect(session.commandNames()).To(ConsistOf("extensions", "twemoji", "noto"))
	})

	It("dispatches interactions to loaded cogs", func() {
		loadAll()

		interaction := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "twemoji",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{{
					Name:  "emoji",
					Type:  discordgo.ApplicationCommandOptionString,
					Value: "🦊",
				}},
			},
			Member: &discordgo.Member{User: &discordgo.User{ID: "someone"}},
		}}
		host.HandleInteraction(ctx, session, interaction)

		resp := session.lastResponse()
		Expect(resp).NotTo(BeNil())
		Expect(resp.Data.Embeds).To(HaveLen(1))
		Expect(resp.Data.Embeds[0].Title).To(Equal("Fox"))
		Expect(resp.Data.Embeds[0].Description).To(ContainSubstring("1F98A"))
	})

	It("reloads an extension into a fresh instance", func() {
		loadAll()

		outcome := manager.Apply(ctx, extension.ActionReload, cogs.IDTwemoji)

		Expect(outcome.Succeeded).To(BeTrue())
		Expect(outcome.Message).To(Equal("Extension successfully reloaded: `cogs.emojis.twemoji`."))
		Expect(session.commandNames()).To(ContainElement("twemoji"))
	})

	It("falls back to a load when reloading an unloaded extension", func() {
		outcome := manager.Apply(ctx, extension.ActionReload, cogs.IDTwemoji)

		Expect(outcome.Succeeded).To(BeTrue())
		Expect(outcome.Message).To(Equal("Extension successfully loaded: `cogs.emojis.twemoji`."))
	})

	It("refuses wildcard unloads that name a protected extension", func() {
		loadAll()

		_, err := manager.ResolveTargets(extension.ActionUnload,
			[]string{cogs.IDExtensions, cogs.IDTwemoji})

		Expect(err).To(HaveOccurred())
		Expect(host.Loaded()).To(HaveLen(3), "nothing may be unloaded on a refused request")
	})

	It("unloads live extensions except the denylist via the live wildcard", func() {
		loadAll()

		targets, err := manager.ResolveTargets(extension.ActionUnload, []string{extension.WildcardLive})
		Expect(err).NotTo(HaveOccurred())
		report := manager.ApplyBatch(ctx, extension.ActionUnload, targets)

		Expect(report.Failed()).To(BeFalse())
		Expect(host.Loaded()).To(ConsistOf(cogs.IDExtensions))
		Expect(session.commandNames()).To(ConsistOf("extensions"))
	})

	It("serves the management command end to end", func() {
		loadAll()

		interaction := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "extensions",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{{
					Name: "list",
					Type: discordgo.ApplicationCommandOptionSubCommand,
				}},
			},
			Member: &discordgo.Member{User: &discordgo.User{ID: "owner-1"}},
		}}
		host.HandleInteraction(ctx, session, interaction)

		resp := session.lastResponse()
		Expect(resp).NotTo(BeNil())
		Expect(resp.Data.Embeds[0].Title).To(Equal("Extensions (3)"))
		Expect(resp.Data.Embeds[0].Description).To(ContainSubstring("🟢  twemoji"))
	})
})
