package ui

import "strings"

// Align type for table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// TableColumn defines a column in a table
type TableColumn struct {
	Header   string
	Align    Align
	MinWidth int
}

// TableBorder style for tables
type TableBorder int

const (
	BorderUnicode TableBorder = iota
	BorderASCII
)

type boxChars struct {
	tl, tr, bl, br string
	h, v           string
	t, ml, m, mr, b string
}

var (
	unicodeBox = boxChars{
		tl: "┌", tr: "┐", bl: "└", br: "┘",
		h: "─", v: "│",
		t: "┬", ml: "├", m: "┼", mr: "┤", b: "┴",
	}
	asciiBox = boxChars{
		tl: "+", tr: "+", bl: "+", br: "+",
		h: "-", v: "|",
		t: "+", ml: "+", m: "+", mr: "+", b: "+",
	}
)

// RenderTable renders rows under the given columns. Cells may carry ANSI
// styling; widths are measured on visible characters.
func RenderTable(columns []TableColumn, rows [][]string, border TableBorder) string {
	box := unicodeBox
	if border == BorderASCII {
		box = asciiBox
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		w := VisibleWidth(col.Header)
		for _, row := range rows {
			if i < len(row) && VisibleWidth(row[i]) > w {
				w = VisibleWidth(row[i])
			}
		}
		if w < col.MinWidth {
			w = col.MinWidth
		}
		widths[i] = w
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(box.h, w+2)
		}
		return left + strings.Join(parts, mid) + right
	}

	renderRow := func(values []string) string {
		parts := make([]string, len(columns))
		for i, col := range columns {
			val := ""
			if i < len(values) {
				val = values[i]
			}
			pad := spaces(widths[i] - VisibleWidth(val))
			if col.Align == AlignRight {
				parts[i] = " " + pad + val + " "
			} else {
				parts[i] = " " + val + pad + " "
			}
		}
		return box.v + strings.Join(parts, box.v) + box.v
	}

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}

	lines := []string{hLine(box.tl, box.t, box.tr), renderRow(headers), hLine(box.ml, box.m, box.mr)}
	for _, row := range rows {
		lines = append(lines, renderRow(row))
	}
	lines = append(lines, hLine(box.bl, box.b, box.br))

	return strings.Join(lines, "\n") + "\n"
}
