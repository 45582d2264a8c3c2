// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package imaging

import (
	"bytes"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RasterizeSVG renders SVG bytes to a raster image. The output dimensions are
// the icon's view box multiplied by scale.
func RasterizeSVG(data []byte, scale float64) (image.Image, error) {
	if scale <= 0 {
		scale = 1
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, ErrBadSVG(err)
	}

	width := int(icon.ViewBox.W * scale)
	height := int(icon.ViewBox.H * scale)
	if width <= 0 || height <= 0 {
		return nil, ErrBadSVG(nil)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, canvas, canvas.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)

	return canvas, nil
}
