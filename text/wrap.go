package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CharWidth returns the approximate rendered width of one character at the
// given font size. Every character is treated as fontSize/2 wide; there are
// no glyph metrics behind this.
func CharWidth(fontSize int) float64 {
	if fontSize < 1 {
		fontSize = 1
	}
	return float64(fontSize) / 2
}

// LineWidth returns the approximate width of line at the given font size
func LineWidth(line string, fontSize int) float64 {
	return float64(len([]rune(line))) * CharWidth(fontSize)
}

// Wrap breaks text into lines no wider than maxWidth pixels under the
// monospace approximation of CharWidth.
//
// Explicit line breaks (\n, \r\n or \r) always end a line. Otherwise a line
// is closed when the next character would push it past maxWidth, and that
// character starts the next line. Breaks may fall in the middle of a word.
// Every line holds at least one character, so a non-positive maxWidth, or a
// character wider than maxWidth, puts one character on each line instead of
// looping. Empty text yields a single empty line.
func Wrap(text string, maxWidth, fontSize int) []string {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	cw := CharWidth(fontSize)
	limit := float64(maxWidth)

	var lines []string
	var current []rune

	for _, r := range text {
		if r == '\n' {
			lines = append(lines, string(current))
			current = current[:0]
			continue
		}

		if len(current) > 0 && float64(len(current)+1)*cw > limit {
			lines = append(lines, string(current))
			current = current[:0]
		}
		current = append(current, r)
	}

	return append(lines, string(current))
}
