// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package cogs

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"

	"github.com/bwmarrin/discordgo"

	"github.com/glyphbot/glyphbot/internal/bot"
	"github.com/glyphbot/glyphbot/internal/imaging"
)

// Server icon preview geometry. Three icon slots rendered side by side on a
// sidebar-colored canvas.
const (
	previewWidth  = 236
	previewHeight = 132
	iconSize      = 48
)

var iconPositions = []image.Point{{X: 12, Y: 42}, {X: 94, Y: 42}, {X: 176, Y: 42}}

// Sidebar background colors for the two client themes.
var previewModes = map[string]string{
	"dark":  "#202225FF",
	"light": "#E2E5E8FF",
}

// PreviewCog renders how an image would look as a Discord server icon.
type PreviewCog struct {
	downloader *imaging.Downloader
}

// NewPreviewCog creates the cog with the given downloader.
func NewPreviewCog(downloader *imaging.Downloader) *PreviewCog {
	return &PreviewCog{downloader: downloader}
}

// Name returns the cog's extension id.
func (c *PreviewCog) Name() string { return IDPreview }

// Commands declares the /preview command group.
func (c *PreviewCog) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{{
		Name:        "preview",
		Description: "Preview assets in Discord's UI",
		Options: []*discordgo.ApplicationCommandOption{{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "server-icon",
			Description: "Preview an image as a server icon",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "url",
					Description: "URL of the image to preview",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "Client theme to preview against",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Dark", Value: "dark"},
						{Name: "Light", Value: "light"},
					},
				},
			},
		}},
	}}
}

// Handlers maps command names to handlers.
func (c *PreviewCog) Handlers() map[string]bot.Handler {
	return map[string]bot.Handler{"preview": c.handle}
}

func (c *PreviewCog) handle(ctx context.Context, s bot.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 || data.Options[0].Name != "server-icon" {
		return respond(s, i, bot.NewEmbed(bot.EmbedError, "Unknown subcommand."))
	}
	sub := data.Options[0]

	rawURL := ""
	mode := "dark"
	for _, opt := range sub.Options {
		switch opt.Name {
		case "url":
			rawURL = opt.StringValue()
		case "mode":
			mode = opt.StringValue()
		}
	}

	img, err := c.downloader.DownloadImage(ctx, rawURL)
	if err != nil {
		return err
	}

	bg, err := imaging.ParseHexColor(previewModes[mode])
	if err != nil {
		return err
	}

	rendered := renderServerIconPreview(img, bg)
	encoded, err := imaging.Encode(rendered, "png")
	if err != nil {
		return err
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Files: []*discordgo.File{{
				Name:        "preview.png",
				ContentType: "image/png",
				Reader:      bytes.NewReader(encoded),
			}},
		},
	})
}

// renderServerIconPreview paints the icon into each sidebar slot, cropped to
// a circle, over the theme background.
func renderServerIconPreview(src image.Image, bg color.Color) *image.NRGBA {
	icon := imaging.AddBackground(imaging.Resize(src, iconSize, iconSize), bg)

	canvas := image.NewNRGBA(image.Rect(0, 0, previewWidth, previewHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	mask := circleMask(iconSize)
	for _, pos := range iconPositions {
		rect := image.Rect(pos.X, pos.Y, pos.X+iconSize, pos.Y+iconSize)
		draw.DrawMask(canvas, rect, icon, image.Point{}, mask, image.Point{}, draw.Over)
	}
	return canvas
}

// circleMask returns an alpha mask with an opaque circle inscribed in a
// d by d square.
func circleMask(d int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, d, d))
	r := float64(d) / 2
	for y := 0; y < d; y++ {
		for x := 0; x < d; x++ {
			dx := float64(x) + 0.5 - r
			dy := float64(y) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}
