package ui

import (
	"os"
	"strconv"
	"strings"
)

const (
	noteMaxWidth = 72
	noteMinWidth = 40
)

// Note prints a boxed message under title through the log output.
func Note(title, message string) {
	lines := strings.Split(WrapText(message, noteWidth()), "\n")

	inner := VisibleWidth(title) + 2
	for _, line := range lines {
		if w := VisibleWidth(line); w > inner {
			inner = w
		}
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(clrDim.Sprint(boxTopLeft + strings.Repeat(boxHorizontal, 2)))
	b.WriteString(" " + clrWarning.Sprint(title) + " ")
	b.WriteString(clrDim.Sprint(strings.Repeat(boxHorizontal, inner-VisibleWidth(title)) + boxTopRight))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(clrDim.Sprint(boxVertical) + " " + PadRight(line, inner+2) + " " + clrDim.Sprint(boxVertical) + "\n")
	}
	b.WriteString(clrDim.Sprint(boxBottomLeft + strings.Repeat(boxHorizontal, inner+4) + boxBottomRight))
	b.WriteString("\n\n")

	printf("%s", b.String())
}

// WarningNote prints a boxed warning.
func WarningNote(message string) {
	Note("⚠ Warning", message)
}

// noteWidth follows COLUMNS when set, within fixed bounds.
func noteWidth() int {
	width := noteMaxWidth
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n-10 < width {
		width = n - 10
	}
	if width < noteMinWidth {
		width = noteMinWidth
	}
	return width
}

// WrapText breaks each line of s at word boundaries so no line is wider
// than width. Words longer than width are kept whole.
func WrapText(s string, width int) string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		current := words[0]
		for _, word := range words[1:] {
			if VisibleWidth(current)+1+VisibleWidth(word) > width {
				out = append(out, current)
				current = word
				continue
			}
			current += " " + word
		}
		out = append(out, current)
	}
	return strings.Join(out, "\n")
}
