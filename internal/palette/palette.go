// Package palette reads a theme's global color palette and projects it into
// the representations a page builder consumes: inline CSS custom properties,
// a flat list of picker values, and the helpers the swatch grid needs.
//
// Every projection is a pure function of an immutable Palette. Records that
// lack a field an output needs are skipped, never reported.
package palette

import (
	"fmt"
	"html"
	"strings"
)

// VarPrefix is the custom-property namespace the page builder's style engine reads.
const VarPrefix = "--wp--preset--color--"

// LegacyHeader opens the stylesheet emitted by the legacy CSS format.
const LegacyHeader = "/* Beaver Builder Color Compatibility with GeneratePress */"

// CSS output formats accepted by FormatStyleCSS.
const (
	FormatCompact = "compact"
	FormatLegacy  = "legacy"
)

// ColorRecord is one entry of the theme's global colors.
// An empty field is treated as absent.
type ColorRecord struct {
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Color string `json:"color" yaml:"color"`
}

// Palette is the ordered collection of global colors. Order is display order.
type Palette []ColorRecord

// hasDeclaration reports whether the record can become a CSS custom property.
func (r ColorRecord) hasDeclaration() bool {
	return r.Slug != "" && r.Color != ""
}

// hasSwatch reports whether the record can be shown in the swatch grid.
func (r ColorRecord) hasSwatch() bool {
	return r.Color != "" && r.Name != ""
}

// Declaration returns the escaped custom-property declaration for the record.
func (r ColorRecord) Declaration() string {
	return fmt.Sprintf("%s%s:%s;", VarPrefix, html.EscapeString(r.Slug), html.EscapeString(r.Color))
}

// Declarations returns one declaration per record carrying both slug and
// color, in palette order.
func (p Palette) Declarations() []string {
	decls := make([]string, 0, len(p))
	for _, rec := range p {
		if !rec.hasDeclaration() {
			continue
		}
		decls = append(decls, rec.Declaration())
	}
	return decls
}

// Swatches returns the records that carry both a color and a name.
func (p Palette) Swatches() []ColorRecord {
	out := make([]ColorRecord, 0, len(p))
	for _, rec := range p {
		if rec.hasSwatch() {
			out = append(out, rec)
		}
	}
	return out
}

// Skipped returns how many records the given output drops.
func (p Palette) Skipped(output string) int {
	switch output {
	case OutputCSS:
		return len(p) - len(p.Declarations())
	case OutputGrid:
		return len(p) - len(p.Swatches())
	default:
		return 0
	}
}

// Output names, shared by metrics and logs.
const (
	OutputCSS     = "css"
	OutputPalette = "palette"
	OutputGrid    = "grid"
)

// FormatCSS renders the palette as a single compact :root block.
// An empty palette yields "" so the caller can skip injection; a palette
// whose records are all invalid still yields ":root{}".
func FormatCSS(p Palette) string {
	if len(p) == 0 {
		return ""
	}
	return ":root{" + strings.Join(p.Declarations(), "") + "}"
}

// FormatLegacyCSS renders the commented, one-declaration-per-line layout
// shipped by the 0.1 plugin line.
func FormatLegacyCSS(p Palette) string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(LegacyHeader)
	b.WriteString("\n:root {")
	b.WriteString(strings.Join(p.Declarations(), "\n"))
	b.WriteString("}")
	return b.String()
}

// FormatStyleCSS dispatches on the configured output format. Unknown formats
// fall back to the compact form.
func FormatStyleCSS(format string, p Palette) string {
	if strings.EqualFold(format, FormatLegacy) {
		return FormatLegacyCSS(p)
	}
	return FormatCSS(p)
}

// Flatten drops names and slugs and keeps the color values in order. A record
// without a color contributes "". The result is never nil.
func Flatten(p Palette) []string {
	values := make([]string, len(p))
	for i, rec := range p {
		values[i] = rec.Color
	}
	return values
}
