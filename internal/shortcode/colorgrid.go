package shortcode

import (
	"palette-bridge/internal/grid"
	"palette-bridge/internal/palette"
)

// ColorGrid returns the handler for the color grid directive. It takes no
// attributes. The palette is the one loaded for the current page; when the
// color settings were unavailable the directive renders a notice instead.
//
// The grid stylesheet is prepended to the first grid only, so a handler
// must not be shared between pages.
func ColorGrid(p palette.Palette, available bool) Handler {
	styled := false
	return func(map[string]string) string {
		if !available {
			return grid.RenderUnavailable()
		}
		out := grid.Render(p)
		if !styled {
			styled = true
			out = grid.StyleTag() + out
		}
		return out
	}
}

// ForPage builds a registry carrying the directives that render p.
func ForPage(p palette.Palette, available bool) *Registry {
	r := NewRegistry()
	r.Register(ColorGridTag, ColorGrid(p, available))
	return r
}
