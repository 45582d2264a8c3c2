// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/cogs"
	"github.com/glyphbot/glyphbot/internal/config"
	"github.com/glyphbot/glyphbot/internal/extension"
	"github.com/glyphbot/glyphbot/internal/imaging"
	"github.com/glyphbot/glyphbot/internal/logging"
	"github.com/glyphbot/glyphbot/internal/observability"
	"github.com/glyphbot/glyphbot/internal/xdg"
)

// Gateway connect retry policy.
const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot",
		Long: `Connect to the Discord gateway, load the configured extensions,
and serve interactions until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBot(cmd.Context(), cmd)
		},
	}

	cmd.Flags().String("registry", "extensions.yaml", "extensions registry file")
	cmd.Flags().String("log-format", "json", "log format (json or text)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("metrics-addr", ":9100", "metrics/health HTTP address")
	cmd.Flags().String("guild", "", "guild to scope command registration to (empty = global)")

	return cmd
}

// defaultConfigPath returns the XDG config file if one exists.
func defaultConfigPath() string {
	path := filepath.Join(xdg.ConfigDir(), "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func runBot(ctx context.Context, cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("glyphbot", version, cfg.Log.Format, cfg.Log.Level)

	registry, err := loadRegistry(cfg.RegistryPath)
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	host := bot.NewCogHost(session, cfg.Discord.AppID, cfg.Discord.GuildID)
	registerCogs(host, cfg)

	// The management cog must never unload itself.
	manager := extension.NewManager(registry, host,
		extension.WithDenylist(cogs.IDExtensions))

	// Registered here rather than in registerCogs: the management cog needs
	// the manager, which needs the host first.
	host.RegisterFactory(cogs.IDExtensions, func() bot.Cog {
		return cogs.NewExtensionsCog(manager, cfg.Discord.OwnerIDs)
	})

	var ready atomic.Bool
	session.AddHandler(func(_ *discordgo.Session, _ *discordgo.Ready) {
		ready.Store(true)
		slog.Info("gateway session ready")
	})
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		host.HandleInteraction(context.Background(), s, i)
	})

	var obs *observability.Server
	if cfg.Metrics.Enabled {
		obs = observability.NewServer(cfg.Metrics.Addr, ready.Load,
			bot.RegisterMetrics, extension.RegisterMetrics)
		if _, err := obs.Start(); err != nil {
			return fmt.Errorf("start observability server: %w", err)
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if stopErr := obs.Stop(stopCtx); stopErr != nil {
				slog.Error("failed to stop observability server", "error", stopErr)
			}
		}()
	}

	if err := connect(ctx, session); err != nil {
		return fmt.Errorf("connect to gateway: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			slog.Error("failed to close gateway session", "error", closeErr)
		}
	}()

	if err := loadInitial(ctx, manager); err != nil {
		return err
	}

	slog.Info("bot running",
		"extensions", len(host.Loaded()),
		"guild", cfg.Discord.GuildID,
	)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case <-ctx.Done():
		slog.Info("context cancelled")
	}

	// Unload everything that can be unloaded so commands are deregistered.
	targets, err := manager.ResolveTargets(extension.ActionUnload, []string{extension.WildcardLive})
	if err == nil && len(targets) > 0 {
		report := manager.ApplyBatch(context.Background(), extension.ActionUnload, targets)
		slog.Info("extensions unloaded", "total", report.Total, "failures", len(report.Failures))
	}

	return nil
}

// loadRegistry validates and parses the extensions registry file.
func loadRegistry(path string) (*extension.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	if err := extension.ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("registry %s: %s", path, extension.FormatSchemaError(err))
	}
	registry, err := extension.ParseRegistry(data)
	if err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return registry, nil
}

// registerCogs installs a factory for every built-in cog.
func registerCogs(host *bot.CogHost, cfg config.Config) {
	downloader := imaging.NewDownloader(
		imaging.WithMaxBytes(cfg.Assets.MaxDownloadBytes),
	)

	host.RegisterFactory(cogs.IDTwemoji, func() bot.Cog {
		return cogs.NewTwemojiCog(cfg.TwemojiSource())
	})
	host.RegisterFactory(cogs.IDNoto, func() bot.Cog {
		return cogs.NewNotoCog(cfg.NotoSource())
	})
	host.RegisterFactory(cogs.IDPreview, func() bot.Cog {
		return cogs.NewPreviewCog(downloader)
	})
	host.RegisterFactory(cogs.IDDiscord, func() bot.Cog {
		return cogs.NewDiscordCog(cfg.Discord.OwnerIDs)
	})
}

// connect opens the gateway session, retrying transient failures with
// exponential backoff.
func connect(ctx context.Context, session *discordgo.Session) error {
	backoff := retry.WithMaxRetries(connectAttempts, retry.NewExponential(connectBackoff))
	return retry.Do(ctx, backoff, func(_ context.Context) error {
		if err := session.Open(); err != nil {
			slog.Warn("gateway connect failed, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

// loadInitial loads every known extension at startup. Individual failures
// are logged, not fatal.
func loadInitial(ctx context.Context, manager *extension.Manager) error {
	targets, err := manager.ResolveTargets(extension.ActionLoad, []string{extension.WildcardAll})
	if err != nil {
		return fmt.Errorf("resolve startup extensions: %w", err)
	}

	report := manager.ApplyBatch(ctx, extension.ActionLoad, targets)
	for _, failure := range report.Failures {
		slog.Error("extension failed to load", "extension", failure.Unit, "error", failure.Error)
	}
	slog.Info("startup extensions loaded",
		"loaded", report.Successes(),
		"total", report.Total,
	)
	return nil
}
