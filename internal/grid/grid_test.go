package grid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"palette-bridge/internal/palette"
)

func TestRenderSingleColor(t *testing.T) {
	out := Render(palette.Palette{{Name: "Primary", Color: "#1E73BE"}})

	assert.Contains(t, out, "#1E73BE")
	assert.Contains(t, out, `<h3 class="gp-color-label-alt">Primary</h3>`)
	assert.Contains(t, out, "var(--primary)")
	assert.Contains(t, out, `style="color: #ffffff"`)
	assert.Contains(t, out, `style="background-color: #1E73BE"`)
	assert.NotContains(t, out, WhiteMarker)
}

func TestRenderWhiteSwatchIsMarked(t *testing.T) {
	out := Render(palette.Palette{{Name: "White", Color: "#FFFFFF"}})

	assert.Contains(t, out, `class="gp-color-box has-white-bg"`)
	assert.Contains(t, out, `style="color: #000000"`)
}

func TestRenderEmptyShowsPlaceholder(t *testing.T) {
	for _, p := range []palette.Palette{nil, {}, {{Name: "Nameless"}, {Color: "#000000"}}} {
		out := Render(p)
		assert.Contains(t, out, NoColorsMessage)
		assert.NotContains(t, out, "gp-color-grid-alt")
		assert.NotContains(t, out, "<article")
	}
}

func TestRenderSkipsIncompleteRecordsAndKeepsOrder(t *testing.T) {
	out := Render(palette.Palette{
		{Name: "Second", Color: "#222222"},
		{Name: "Missing"},
		{Name: "First", Color: "#111111"},
	})

	assert.Equal(t, 2, strings.Count(out, "<article"))
	assert.NotContains(t, out, "Missing")
	assert.Less(t, strings.Index(out, "Second"), strings.Index(out, "First"))
}

func TestRenderEscapesNames(t *testing.T) {
	out := Render(palette.Palette{{Name: `<b>Bold</b> & "Co"`, Color: `#000000" onmouseover="x`}})

	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, `" onmouseover="`)
	assert.Contains(t, out, "&lt;b&gt;Bold&lt;/b&gt; &amp; &#34;Co&#34;")
	assert.Contains(t, out, "var(--bboldb-co)")
}

func TestNewSwatchMalformedColorFallsBack(t *testing.T) {
	s := NewSwatch(palette.ColorRecord{Name: "Odd", Color: "#abc"})
	assert.Equal(t, palette.Black, s.TextColor)
	assert.Equal(t, "--odd", s.VarName)
	assert.False(t, s.White)
}

func TestRenderUnavailable(t *testing.T) {
	assert.Equal(t, "<p>GeneratePress not active</p>", RenderUnavailable())
}

func TestStyleTag(t *testing.T) {
	tag := StyleTag()
	assert.True(t, strings.HasPrefix(tag, `<style id="gp-color-grid-styles-inline-css">`))
	assert.Contains(t, tag, ".gp-color-box.has-white-bg")
}

func TestRenderParallel(t *testing.T) {
	p := palette.Palette{
		{Name: "Crème Brûlée", Slug: "creme", Color: "#F3E5AB"},
		{Name: "Café Noir", Slug: "cafe", Color: "#4B3621"},
		{Name: "Blanc", Slug: "blanc", Color: "#FFFFFF"},
	}
	want := Render(p)
	wantCSS := palette.FormatCSS(p)

	for i := 0; i < 8; i++ {
		t.Run("worker", func(t *testing.T) {
			t.Parallel()
			for j := 0; j < 200; j++ {
				assert.Equal(t, want, Render(p))
				assert.Equal(t, wantCSS, palette.FormatCSS(p))
				assert.Len(t, palette.Flatten(p), 3)
			}
		})
	}
}
