// Package grid renders the global colors as an HTML swatch grid for style
// guides and documentation pages.
package grid

import (
	"fmt"
	"html"
	"strings"

	"palette-bridge/internal/palette"
)

// StyleHandle identifies the grid stylesheet in the page.
const StyleHandle = "gp-color-grid-styles"

// WhiteMarker is added to swatches whose background is pure white so they
// stay visible on light pages.
const WhiteMarker = "has-white-bg"

const (
	heading         = "Global Colors"
	NoColorsMessage = "No global colors found in GeneratePress Customizer color settings."
	InactiveMessage = "GeneratePress not active"
)

// Stylesheet lays out the grid. It is emitted once per page, ahead of the
// first grid.
const Stylesheet = `
.gp-color-grid-alt {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(270px, 1fr));
    gap: 20px;
    margin-block: 40px;
}

.gp-color-box {
    height: 190px;
    padding: 20px;
    display: flex;
    flex-direction: column;
    align-items: center;
    justify-content: center;
    text-align: center;
}

.gp-color-box.has-white-bg {
    border: 1px solid #000;
}

.gp-color-info-alt {
    display: flex;
    flex-direction: column;
    gap: 12px;
    align-items: center;
}

.gp-color-label-alt {
    font-size: 1.4em;
    font-weight: bold;
    margin: 0;
    color: inherit;
}

.gp-color-var-alt,
.gp-color-hex-alt {
    font-family: ui-monospace, Menlo, Monaco, "Courier New", monospace;
    font-size: 0.9em;
    background: inherit;
}
`

// StyleTag wraps Stylesheet in a style element.
func StyleTag() string {
	return `<style id="` + StyleHandle + `-inline-css">` + Stylesheet + "</style>\n"
}

// Swatch holds the display values of one grid cell.
type Swatch struct {
	Label     string
	VarName   string
	Hex       string
	TextColor string
	White     bool
}

// NewSwatch derives the display values for a record. Colors that cannot be
// parsed keep the swatch but fall back to black text.
func NewSwatch(rec palette.ColorRecord) Swatch {
	text, err := palette.ReadableTextColor(rec.Color)
	if err != nil {
		text = palette.Black
	}
	return Swatch{
		Label:     rec.Name,
		VarName:   palette.VarName(rec.Name),
		Hex:       rec.Color,
		TextColor: text,
		White:     palette.IsWhite(rec.Color),
	}
}

// Render returns the grid for p. Records without a color or a name are
// skipped; if none remain a placeholder message replaces the grid.
func Render(p palette.Palette) string {
	records := p.Swatches()

	var b strings.Builder
	b.WriteString(`<section class="gp-style-guide-alt">`)
	b.WriteString("<h2>" + heading + "</h2>")

	if len(records) == 0 {
		b.WriteString("<p>" + NoColorsMessage + "</p>")
		b.WriteString("</section>")
		return b.String()
	}

	b.WriteString(`<div class="gp-color-grid-alt">`)
	for _, rec := range records {
		writeSwatch(&b, NewSwatch(rec))
	}
	b.WriteString("</div>")
	b.WriteString("</section>")
	return b.String()
}

// RenderUnavailable is shown in place of the grid when the theme's color
// settings cannot be read.
func RenderUnavailable() string {
	return "<p>" + InactiveMessage + "</p>"
}

func writeSwatch(b *strings.Builder, s Swatch) {
	class := "gp-color-box"
	if s.White {
		class += " " + WhiteMarker
	}
	hex := html.EscapeString(s.Hex)
	varName := html.EscapeString(s.VarName)

	fmt.Fprintf(b, `<article class="%s" style="background-color: %s">`, class, hex)
	fmt.Fprintf(b, `<div class="gp-color-info-alt" style="color: %s">`, s.TextColor)
	fmt.Fprintf(b, `<h3 class="gp-color-label-alt">%s</h3>`, html.EscapeString(s.Label))
	fmt.Fprintf(b, `<code class="gp-color-var-alt">var(%s)</code>`, varName)
	fmt.Fprintf(b, `<code class="gp-color-hex-alt">%s</code>`, hex)
	b.WriteString("</div></article>")
}
