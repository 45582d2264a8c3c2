// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package imaging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glyphbot/glyphbot/internal/imaging"
	"github.com/glyphbot/glyphbot/pkg/errutil"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 36 36">` +
	`<rect x="0" y="0" width="36" height="36" fill="#ff0000"/></svg>`

func TestRasterizeSVG(t *testing.T) {
	img, err := imaging.RasterizeSVG([]byte(testSVG), 1)
	require.NoError(t, err)
	assert.Equal(t, 36, img.Bounds().Dx())
	assert.Equal(t, 36, img.Bounds().Dy())
}

func TestRasterizeSVG_Scaled(t *testing.T) {
	img, err := imaging.RasterizeSVG([]byte(testSVG), 2)
	require.NoError(t, err)
	assert.Equal(t, 72, img.Bounds().Dx())
}

func TestRasterizeSVG_InvalidXML(t *testing.T) {
	_, err := imaging.RasterizeSVG([]byte("<svg"), 1)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, imaging.CodeBadSVG)
}

func TestRasterizeSVG_NoViewBox(t *testing.T) {
	_, err := imaging.RasterizeSVG([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), 1)
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, imaging.CodeBadSVG)
}
