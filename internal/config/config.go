// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

// Package config loads bot configuration from a YAML file, overlaid with
// command-line flags.
package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/glyphbot/glyphbot/internal/emoji"
	"github.com/glyphbot/glyphbot/internal/imaging"
)

// Config is the full bot configuration.
type Config struct {
	Discord Discord `koanf:"discord"`
	Log     Log     `koanf:"log"`
	Metrics Metrics `koanf:"metrics"`
	Assets  Assets  `koanf:"assets"`

	// RegistryPath locates the extensions registry YAML.
	RegistryPath string `koanf:"registry"`
}

// Discord holds gateway credentials and command scoping.
type Discord struct {
	// Token is the bot token. Also settable via GLYPHBOT_TOKEN.
	Token string `koanf:"token"`
	// AppID is the application id commands are registered under.
	AppID string `koanf:"app_id"`
	// GuildID scopes command registration to one guild when set; empty
	// registers global commands.
	GuildID string `koanf:"guild_id"`
	// OwnerIDs are the user ids allowed to manage extensions.
	OwnerIDs []string `koanf:"owner_ids"`
}

// Log configures the structured logger.
type Log struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// Metrics configures the observability endpoint.
type Metrics struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// Assets configures emoji asset sources and download limits.
type Assets struct {
	TwemojiPNGBase string `koanf:"twemoji_png_base"`
	TwemojiSVGBase string `koanf:"twemoji_svg_base"`
	NotoBase       string `koanf:"noto_base"`
	// MaxDownloadBytes caps user-supplied image downloads.
	MaxDownloadBytes int64 `koanf:"max_download_bytes"`
}

// tokenEnvVar overrides discord.token so secrets can stay out of the file.
const tokenEnvVar = "GLYPHBOT_TOKEN"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:          Log{Format: "json", Level: "info"},
		Metrics:      Metrics{Enabled: true, Addr: ":9100"},
		RegistryPath: "extensions.yaml",
		Assets: Assets{
			TwemojiPNGBase:   emoji.DefaultTwemojiPNGBase,
			TwemojiSVGBase:   emoji.DefaultTwemojiSVGBase,
			NotoBase:         emoji.DefaultNotoBase,
			MaxDownloadBytes: imaging.DefaultMaxBytes,
		},
	}
}

// flagKeys maps command-line flag names onto config keys. Flags not listed
// here (like --config itself) never reach the config tree.
var flagKeys = map[string]string{
	"registry":     "registry",
	"log-format":   "log.format",
	"log-level":    "log.level",
	"metrics-addr": "metrics.addr",
	"guild":        "discord.guild_id",
}

// Load reads configuration: defaults, then the YAML file at path (optional
// unless explicitly given), then flags, then the token env var. Flags that
// were not set on the command line do not override file values.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if flags != nil {
		provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if token := os.Getenv(tokenEnvVar); token != "" {
		cfg.Discord.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks fields the bot cannot run without.
func (c Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("discord.token is required (or set %s)", tokenEnvVar)
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("discord.app_id is required")
	}
	if c.RegistryPath == "" {
		return fmt.Errorf("registry path is required")
	}
	if c.Assets.MaxDownloadBytes <= 0 {
		return fmt.Errorf("assets.max_download_bytes must be positive")
	}
	return nil
}

// TwemojiSource builds the Twemoji asset source from config.
func (c Config) TwemojiSource() emoji.TwemojiSource {
	return emoji.TwemojiSource{
		PNGBase: c.Assets.TwemojiPNGBase,
		SVGBase: c.Assets.TwemojiSVGBase,
	}
}

// NotoSource builds the Noto asset source from config.
func (c Config) NotoSource() emoji.NotoSource {
	return emoji.NotoSource{Base: c.Assets.NotoBase}
}
