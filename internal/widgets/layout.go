package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Grid lays cells out row by row, Columns per row, each CellHeight tall.
// Rows before Offset are skipped; rows that do not fit height are dropped.
type Grid struct {
	Cells      []Widget
	Columns    int
	CellHeight int
	Gap        int
	Offset     int
}

// RowsVisible returns how many full rows of cellHeight fit in height.
func RowsVisible(height, cellHeight, gap int) int {
	if cellHeight <= 0 || height < cellHeight {
		return 0
	}
	return 1 + (height-cellHeight)/(cellHeight+gap)
}

func (g Grid) Render(width, height int) string {
	if len(g.Cells) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	cols := max(1, g.Columns)
	cellH := max(1, g.CellHeight)
	gap := max(0, g.Gap)
	visible := max(1, RowsVisible(height, cellH, gap))
	widths := columnWidths(width, cols, gap)
	spacer := strings.Repeat(" ", gap)

	var rows []string
	for first := max(0, g.Offset) * cols; first < len(g.Cells) && len(rows) < visible; first += cols {
		lines := make([]string, cellH)
		for c, w := range widths {
			var drawn []string
			if i := first + c; i < len(g.Cells) {
				drawn = strings.Split(g.Cells[i].Render(w, cellH), "\n")
			}
			for l := range lines {
				part := ""
				if l < len(drawn) {
					part = drawn[l]
				}
				if c > 0 {
					lines[l] += spacer
				}
				lines[l] += cell(part, w)
			}
		}
		rows = append(rows, strings.Join(lines, "\n"))
	}
	return strings.Join(rows, "\n"+strings.Repeat("\n", gap))
}

// columnWidths divides width into cols columns separated by gap. Leftmost
// columns take the remainder.
func columnWidths(width, cols, gap int) []int {
	usable := max(cols, width-gap*(cols-1))
	out := make([]int, cols)
	for i := range out {
		out[i] = usable / cols
		if i < usable%cols {
			out[i]++
		}
	}
	return out
}

// cell cuts or pads s to exactly width columns.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	return s + strings.Repeat(" ", width-ansi.StringWidth(s))
}

func fitWidth(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], max(0, width), "")
	}
	return strings.Join(lines, "\n")
}

// ClipHeight keeps the first height lines of s.
func ClipHeight(s string, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
