package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"palette-bridge/internal/grid"
)

const settingsJSON = `{
  "generate_settings": {
    "global_colors": [
      {"name": "Contrast", "slug": "contrast", "color": "#222222"},
      {"name": "Base", "slug": "base", "color": "#FFFFFF"},
      {"name": "Accent", "color": "#1E73BE"}
    ]
  }
}`

func writeSettings(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	out, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "palettectl help")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "global colors")
	for _, sub := range []string{"css", "palette", "grid", "expand", "list", "hash-token"} {
		assert.Contains(t, out, sub)
	}
}

func TestCSSCommand(t *testing.T) {
	path := writeSettings(t, "settings.json", settingsJSON)

	out, _, err := run(t, "--settings", path, "css")
	require.NoError(t, err)
	assert.Equal(t, ":root{--wp--preset--color--contrast:#222222;--wp--preset--color--base:#FFFFFF;}\n", out)

	out, _, err = run(t, "--settings", path, "css", "--format", "LEGACY")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "/* Beaver Builder Color Compatibility with GeneratePress */\n:root {"))

	_, _, err = run(t, "--settings", path, "css", "--format", "pretty")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCSSCommandEmptyPalette(t *testing.T) {
	path := writeSettings(t, "settings.json", `{"global_colors": []}`)

	out, _, err := run(t, "--settings", path, "css")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCSSCommandMissingSettings(t *testing.T) {
	_, _, err := run(t, "--settings", filepath.Join(t.TempDir(), "nope.json"), "css")
	assert.ErrorContains(t, err, "settings file not found")
}

func TestPaletteCommand(t *testing.T) {
	path := writeSettings(t, "settings.json", settingsJSON)

	out, _, err := run(t, "--settings", path, "palette")
	require.NoError(t, err)
	assert.Equal(t, `var generatePressPalette = ["#222222","#FFFFFF","#1E73BE"];`+"\n", out)

	out, _, err = run(t, "--settings", path, "palette", "--json", "--global", "ignored")
	require.NoError(t, err)
	assert.JSONEq(t, `["#222222","#FFFFFF","#1E73BE"]`, out)

	out, _, err = run(t, "--settings", path, "palette", "--global", "bbPalette")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "var bbPalette = "))
}

func TestPaletteCommandRejectsBadGlobal(t *testing.T) {
	path := writeSettings(t, "settings.json", settingsJSON)

	for _, global := range []string{"x;alert(1)", "window.p", "2p", ""} {
		out, _, err := run(t, "--settings", path, "palette", "--global", global)
		assert.ErrorContains(t, err, "not a valid script identifier", global)
		assert.Empty(t, out)
	}
}

func TestGridCommand(t *testing.T) {
	path := writeSettings(t, "settings.yaml", `
global_colors:
  - name: Contrast
    slug: contrast
    color: "#222222"
  - name: Base
    slug: base
    color: "#ffffff"
`)

	out, _, err := run(t, "--settings", path, "grid")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, grid.StyleTag()))
	assert.Equal(t, 2, strings.Count(out, "<article"))
	assert.Contains(t, out, "var(--contrast)")
	assert.Contains(t, out, grid.WhiteMarker)
}

func TestGridCommandUnavailable(t *testing.T) {
	out, _, err := run(t, "--settings", filepath.Join(t.TempDir(), "nope.json"), "grid")
	require.NoError(t, err)
	assert.Equal(t, grid.RenderUnavailable()+"\n", out)
}

func TestExpandCommand(t *testing.T) {
	settings := writeSettings(t, "settings.json", settingsJSON)
	page := writeSettings(t, "page.html", "<h1>Brand</h1>[gp_global_color_grid][gp_global_color_grid]")

	out, _, err := run(t, "--settings", settings, "expand", page)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<h1>Brand</h1>"+grid.StyleTag()))
	assert.Equal(t, 1, strings.Count(out, "<style"))
	assert.Equal(t, 2, strings.Count(out, `<section class="gp-style-guide-alt">`))
}

func TestExpandCommandStdin(t *testing.T) {
	settings := writeSettings(t, "settings.json", settingsJSON)

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetIn(strings.NewReader("before [[gp_global_color_grid]] after"))
	cmd.SetArgs([]string{"--settings", settings, "expand", "-"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Equal(t, "before [gp_global_color_grid] after", stdout.String())
}

func TestListCommand(t *testing.T) {
	path := writeSettings(t, "settings.json", `{"global_colors": [
		{"name": "Contrast", "slug": "contrast", "color": "#222222"},
		{"name": "Broken", "slug": "broken", "color": "#12"},
		{"slug": "nameless", "color": "#FFFFFF"}
	]}`)

	out, _, err := run(t, "--settings", path, "list", "--ascii")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "Variable")
	assert.Contains(t, lines[3], "#ffffff")
	assert.Contains(t, lines[3], "--wp--preset--color--contrast")
	assert.Contains(t, lines[4], "invalid")
	assert.Contains(t, lines[5], "| -        |")
	assert.Contains(t, lines[5], "#000000")
}

func TestListCommandEmpty(t *testing.T) {
	path := writeSettings(t, "settings.json", `{}`)

	out, _, err := run(t, "--settings", path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no global colors")
}

func TestHashTokenCommand(t *testing.T) {
	out, stderr, err := run(t, "hash-token", "s3cret")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
	assert.Contains(t, stderr, "admin_token_hash")
}
