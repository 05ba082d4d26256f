package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Black = "#000000"
	White = "#ffffff"
)

// ErrInvalidHex is returned for color strings that are not six hex digits,
// optionally prefixed with '#'.
var ErrInvalidHex = errors.New("invalid hex color")

// luminanceThreshold splits dark from light backgrounds. Values strictly
// above it get black text.
const luminanceThreshold = 0.5

// ParseHex splits a #rrggbb color into its 8-bit channels.
func ParseHex(hex string) (r, g, b uint8, err error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidHex, hex)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// Luminance returns the perceived brightness of a color in [0, 1] using the
// 0.299/0.587/0.114 channel weights. It is a heuristic, not a WCAG relative
// luminance.
func Luminance(hex string) (float64, error) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255, nil
}

// ReadableTextColor picks black or white text for the given background.
// The choice approximates legibility; it does not guarantee a WCAG contrast
// ratio.
func ReadableTextColor(hex string) (string, error) {
	l, err := Luminance(hex)
	if err != nil {
		return "", err
	}
	return textColorFor(l), nil
}

func textColorFor(luminance float64) string {
	if luminance > luminanceThreshold {
		return Black
	}
	return White
}

// IsWhite reports whether hex is pure white, ignoring case.
func IsWhite(hex string) bool {
	return strings.EqualFold(hex, White)
}

// VarName returns the theme variable reference for a color name, e.g.
// "Primary Blue" -> "--primary-blue".
func VarName(name string) string {
	return "--" + Slugify(strings.ToLower(name))
}

// Slugify lowercases s, strips accents and turns whitespace, dots and dashes
// into single dashes. Any other character outside [a-z0-9_] is dropped.
func Slugify(s string) string {
	// A chain keeps state between calls, so each call builds its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-', r == '.', unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return b.String()
}
