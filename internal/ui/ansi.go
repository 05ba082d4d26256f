package ui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SGR codes (ESC[...m) and OSC-8 hyperlinks
var allAnsiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

// StripAnsi removes all ANSI escape codes from a string
func StripAnsi(input string) string {
	return allAnsiPattern.ReplaceAllString(input, "")
}

// VisibleWidth returns the display width of a string, ignoring ANSI codes
// This counts runes, not bytes, for proper Unicode support
func VisibleWidth(input string) int {
	return utf8.RuneCountInString(StripAnsi(input))
}

// PadRight pads a string to a minimum visible width
func PadRight(input string, width int) string {
	return input + spaces(width-VisibleWidth(input))
}

// spaces returns a string of n spaces
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
