// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	img "github.com/disintegration/imaging"
)

// OutputFormats are the encodings supported for attachment output.
var OutputFormats = []string{"png", "jpeg", "gif"}

// Decode parses raster image bytes. PNG, JPEG, and GIF are accepted.
func Decode(data []byte) (image.Image, error) {
	decoded, err := img.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrBadImage(err)
	}
	return decoded, nil
}

// AlphaMask builds a grayscale mask from the alpha channel: fully transparent
// pixels map to black, everything else to white.
func AlphaMask(src image.Image) *image.Gray {
	bounds := src.Bounds()
	mask := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			if a != 0 {
				mask.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return mask
}

// AddBackground composites src over a solid background colour. Transparent
// regions take the background; everything else keeps the source pixel.
func AddBackground(src image.Image, bg color.Color) *image.NRGBA {
	bounds := src.Bounds()
	canvas := image.NewNRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.DrawMask(canvas, bounds, src, bounds.Min, AlphaMask(src), bounds.Min, draw.Over)
	return canvas
}

// Resize scales src to the given dimensions with Lanczos resampling.
func Resize(src image.Image, width, height int) *image.NRGBA {
	return img.Resize(src, width, height, img.Lanczos)
}

// Encode serialises an image to one of OutputFormats. JPEG has no alpha
// channel, so transparency is flattened onto white first.
func Encode(src image.Image, format string) ([]byte, error) {
	format = strings.ToLower(format)

	var encFormat img.Format
	switch format {
	case "png":
		encFormat = img.PNG
	case "jpeg", "jpg":
		encFormat = img.JPEG
		src = AddBackground(src, color.White)
	case "gif":
		encFormat = img.GIF
	default:
		return nil, ErrBadFormat(format)
	}

	var buf bytes.Buffer
	if err := img.Encode(&buf, src, encFormat); err != nil {
		return nil, ErrBadImage(err)
	}
	return buf.Bytes(), nil
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" colour notation.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(s, "#")
	c := color.NRGBA{A: 0xff}

	var err error
	switch len(s) {
	case 6:
		_, err = fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return c, fmt.Errorf("invalid colour %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if err != nil {
		return c, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}
