// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Glyphbot Contributors

// Package emoji converts between emoji glyphs, raw codepoint notation, and the
// canonical hyphen-joined lowercase hex form used in asset file names.
package emoji

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/forPelevin/gomoji"
	"github.com/samber/oops"
)

// CodeUnknownEmoji is the error code for input that resolves to no known emoji.
const CodeUnknownEmoji = "UNKNOWN_EMOJI"

// codeRegex matches the trailing hex codepoint in notations such as "U+1f1f8",
// "f1f8", or a bare "1f466". The first digit is never zero because
// leading zeros are stripped from trimmed codepoints.
var codeRegex = regexp.MustCompile(`[a-f1-9][a-f0-9]{3,5}$`)

// TrimCode extracts the meaningful hex codepoint from raw notation.
// Returns "" when no codepoint is present.
func TrimCode(s string) string {
	if s == "" {
		return ""
	}
	return codeRegex.FindString(s)
}

// Glyph returns the character for a codepoint in any accepted notation,
// or "" when the input does not contain a codepoint.
func Glyph(code string) string {
	trimmed := TrimCode(code)
	if trimmed == "" {
		return ""
	}
	n, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return ""
	}
	return string(rune(n))
}

// Codepoint returns the lowercase hex codepoint of a single rune, without
// the "0x" prefix.
func Codepoint(r rune) string {
	return strconv.FormatInt(int64(r), 16)
}

// IsEmoji reports whether s is a known emoji. Combined sequences such as
// flags and ZWJ families count as a single emoji.
func IsEmoji(s string) bool {
	if s == "" {
		return false
	}
	_, err := gomoji.GetInfo(s)
	return err == nil
}

// Name returns a human-readable name for an emoji glyph, such as
// "Falling leaf" for the falling leaf emoji. Returns "" for unknown glyphs.
func Name(glyph string) string {
	info, err := gomoji.GetInfo(glyph)
	if err != nil {
		return ""
	}
	name := strings.ReplaceAll(info.Slug, "-", " ")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// FromInput resolves raw user input to the canonical hyphen-joined codepoint
// string. The input is either a single emoji glyph ("🐍", "👨‍👧‍👦") or a
// whitespace-separated list of codepoints ("1f1f8 1f1ea", "U+1f466").
func FromInput(raw string) (string, error) {
	tokens := strings.Fields(strings.ToLower(raw))
	if len(tokens) == 0 {
		return "", oops.Code(CodeUnknownEmoji).
			Errorf("no codepoint could be obtained from empty input")
	}

	if IsEmoji(tokens[0]) {
		return joinCodepoints(tokens[0]), nil
	}

	var glyph strings.Builder
	for _, tok := range tokens {
		glyph.WriteString(Glyph(tok))
	}
	if assembled := glyph.String(); IsEmoji(assembled) {
		return joinCodepoints(assembled), nil
	}

	return "", oops.Code(CodeUnknownEmoji).
		With("input", raw).
		Errorf("no codepoint could be obtained from the given input")
}

// joinCodepoints renders every rune of glyph as hex, joined with hyphens.
func joinCodepoints(glyph string) string {
	parts := make([]string, 0, len(glyph))
	for _, r := range glyph {
		parts = append(parts, Codepoint(r))
	}
	return strings.Join(parts, "-")
}
