package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Popup is a bordered box composited over a base view.
type Popup struct {
	Title  string
	Body   string
	Width  int // inner width; 0 sizes to the body
	Border lipgloss.TerminalColor
}

// RenderPopup centres p over base, keeping the base visible around it.
func RenderPopup(base string, p Popup, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	body := p.Body
	if p.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Render(p.Title) + "\n\n" + body
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2)
	if p.Border != nil {
		style = style.BorderForeground(p.Border)
	}
	if p.Width > 0 {
		style = style.Width(min(p.Width, max(1, width-6)))
	}
	box := strings.Split(ClipHeight(fitWidth(style.Render(body), width), height), "\n")
	boxWidth := 0
	for _, l := range box {
		boxWidth = max(boxWidth, ansi.StringWidth(l))
	}
	return splice(canvas(base, width, height), box, (width-boxWidth)/2, (height-len(box))/2, boxWidth)
}

// splice writes box onto rows starting at column x of row y. Each box line
// covers boxWidth columns; the rows keep their content on both sides.
func splice(rows, box []string, x, y, boxWidth int) string {
	width := 0
	if len(rows) > 0 {
		width = ansi.StringWidth(rows[0])
	}
	for i, line := range box {
		r := y + i
		if r < 0 || r >= len(rows) {
			continue
		}
		left := ansi.Truncate(rows[r], x, "")
		right := ansi.TruncateLeft(rows[r], x+boxWidth, "")
		rows[r] = cell(left+cell(line, boxWidth)+right, width)
	}
	return strings.Join(rows, "\n")
}

// canvas returns exactly height rows of s, each exactly width columns.
func canvas(s string, width, height int) []string {
	rows := strings.Split(ClipHeight(s, height), "\n")
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i := range rows {
		rows[i] = cell(rows[i], width)
	}
	return rows
}
