package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevNoColor := color.NoColor
	color.NoColor = true
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		SetOutput(color.Output)
		SetLevel("info")
	})
	return buf
}

func TestStripAnsiAndWidth(t *testing.T) {
	styled := "\x1b[31mred\x1b[0m"
	assert.Equal(t, "red", StripAnsi(styled))
	assert.Equal(t, 3, VisibleWidth(styled))
	assert.Equal(t, 4, VisibleWidth("ünï✓"))
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]TableColumn{{Header: "Slug"}, {Header: "Hex", Align: AlignRight}},
		[][]string{{"contrast", "#222222"}, {"a", "#fff"}},
		BorderASCII,
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, "+----------+---------+", lines[0])
	assert.Equal(t, "| Slug     |     Hex |", lines[1])
	assert.Equal(t, "| a        |    #fff |", lines[4])
}

func TestLogStatusDebugIsGated(t *testing.T) {
	buf := captureOutput(t)

	LogStatus("debug", "hidden")
	assert.Empty(t, buf.String())

	SetLevel("DEBUG")
	LogStatus("debug", "shown")
	LogStatus("error", "boom")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "✖  boom")
}

func TestLogRequest(t *testing.T) {
	buf := captureOutput(t)

	LogRequest("0123456789abcdef", "GET", "/palette.css", 200, 2048, 1500*time.Microsecond)
	line := buf.String()
	assert.Contains(t, line, "/palette.css")
	assert.Contains(t, line, "200")
	assert.Contains(t, line, "2.0 kB")
	assert.Contains(t, line, "01234567")
	assert.NotContains(t, line, "89abcdef")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "one two\nthree\nfour", WrapText("one two three\nfour", 8))
	assert.Equal(t, "supercalifragilistic\nx", WrapText("supercalifragilistic x", 8))
	assert.Equal(t, "a\n\nb", WrapText("a\n\nb", 8))
}

func TestNoteBoxIsAligned(t *testing.T) {
	buf := captureOutput(t)

	WarningNote("settings file not found; palette routes answer 204 until it appears")

	lines := strings.Split(strings.Trim(buf.String(), "\n"), "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "Warning")
	for _, line := range lines[1:] {
		assert.Equal(t, VisibleWidth(lines[0]), VisibleWidth(line))
	}
}
