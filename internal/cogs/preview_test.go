// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package cogs

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderServerIconPreview(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	bg := color.NRGBA{R: 0x20, G: 0x22, B: 0x25, A: 0xff}

	out := renderServerIconPreview(solidImage(96, 96, red), bg)

	assert.Equal(t, previewWidth, out.Bounds().Dx())
	assert.Equal(t, previewHeight, out.Bounds().Dy())

	// Slot centers carry the icon color, corners between slots stay background.
	for _, pos := range iconPositions {
		cx, cy := pos.X+iconSize/2, pos.Y+iconSize/2
		r, _, _, _ := out.At(cx, cy).RGBA()
		assert.NotZero(t, r, "icon slot at %d,%d", cx, cy)
	}
	got := out.NRGBAAt(0, 0)
	assert.Equal(t, bg, got)
}

func TestCircleMask(t *testing.T) {
	mask := circleMask(48)

	// Center opaque, corners transparent.
	assert.Equal(t, uint8(0xff), mask.AlphaAt(24, 24).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(0, 0).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(47, 47).A)
}

func TestPaginate(t *testing.T) {
	lines := []string{"aaaa", "bbbb", "cccc"}

	pages := paginate(lines, 10)

	assert.Len(t, pages, 2)
	assert.Equal(t, []string{"aaaa", "bbbb"}, pages[0])
	assert.Equal(t, []string{"cccc"}, pages[1])
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Emojis", titleCase("emojis"))
	assert.Equal(t, "Utils Admin", titleCase("utils_admin"))
	assert.Equal(t, "Utils - Admin", titleCase("utils - admin"))
}
