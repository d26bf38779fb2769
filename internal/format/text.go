// Package format provides shared text formatting utilities for terminal output.
package format

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes ANSI escape sequences from a string.
func StripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// DisplayWidth returns the visible width of a string in terminal columns,
// ignoring ANSI escape sequences and counting wide runes as two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(StripAnsi(s))
}

// TruncateToWidth shortens plain text to at most maxWidth columns, ending in
// "..." when it had to cut. Returns the result and its visible width.
// Colors should be applied after truncation.
func TruncateToWidth(s string, maxWidth int) (string, int) {
	if maxWidth <= 0 {
		return "", 0
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s, runewidth.StringWidth(s)
	}
	out := runewidth.Truncate(s, maxWidth, "...")
	return out, runewidth.StringWidth(out)
}

// PadRight pads a string with spaces to reach the target visible width.
func PadRight(s string, visibleWidth, targetWidth int) string {
	if visibleWidth >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visibleWidth)
}

// Cell fits plain text into a column of exactly width columns.
func Cell(s string, width int) string {
	out, w := TruncateToWidth(s, width)
	return PadRight(out, w, width)
}
