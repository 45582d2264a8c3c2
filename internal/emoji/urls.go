// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

package emoji

import (
	"fmt"
	"strings"
)

// Format identifies an emoji asset file format.
type Format string

// Asset formats served by the upstream emoji repositories.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Default asset base URLs.
const (
	DefaultTwemojiPNGBase = "https://raw.githubusercontent.com/twitter/twemoji/master/assets/72x72"
	DefaultTwemojiSVGBase = "https://raw.githubusercontent.com/twitter/twemoji/master/assets/svg"
	DefaultNotoBase       = "https://raw.githubusercontent.com/googlefonts/noto-emoji/main"
)

// TwemojiSource builds download URLs for Twemoji asset files.
type TwemojiSource struct {
	PNGBase string
	SVGBase string
}

// NewTwemojiSource creates a source with the default upstream bases.
func NewTwemojiSource() TwemojiSource {
	return TwemojiSource{
		PNGBase: DefaultTwemojiPNGBase,
		SVGBase: DefaultTwemojiSVGBase,
	}
}

// URL returns the source file URL for a canonical codepoint in the given format.
func (s TwemojiSource) URL(codepoint string, format Format) string {
	base := s.PNGBase
	if format == FormatSVG {
		base = s.SVGBase
	}
	return fmt.Sprintf("%s/%s.%s", base, codepoint, format)
}

// NotoSource builds download URLs for Noto emoji asset files.
// Noto uses underscore-joined codepoints with an "emoji_u" prefix, and
// publishes PNGs at fixed sizes.
type NotoSource struct {
	Base string
}

// NewNotoSource creates a source with the default upstream base.
func NewNotoSource() NotoSource {
	return NotoSource{Base: DefaultNotoBase}
}

// PNG sizes published by the Noto repository.
const (
	NotoSize32  = 32
	NotoSize72  = 72
	NotoSize128 = 128
	NotoSize512 = 512
)

// URL returns the source file URL for a canonical codepoint. The size is
// only used for PNG output.
func (s NotoSource) URL(codepoint string, format Format, size int) string {
	name := strings.ReplaceAll(codepoint, "-", "_")
	if format == FormatSVG {
		return fmt.Sprintf("%s/svg/emoji_u%s.svg", s.Base, name)
	}
	return fmt.Sprintf("%s/png/%d/emoji_u%s.png", s.Base, size, name)
}
