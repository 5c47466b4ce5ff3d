package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Chip is one badge label with its colour.
type Chip struct {
	Label string
	Color lipgloss.TerminalColor
}

func (c Chip) render() string {
	style := lipgloss.NewStyle().Padding(0, 1)
	if c.Color != nil {
		style = style.Foreground(colorCrust).Background(c.Color)
	}
	return style.Render(c.Label)
}

// Chips lays badges out. Inline keeps one line and truncates at width;
// otherwise chips wrap onto as many lines as they need.
func Chips(chips []Chip, width int, inline bool) string {
	if len(chips) == 0 || width <= 0 {
		return ""
	}
	var lines []string
	line := ""
	for _, c := range chips {
		chip := c.render()
		next := chip
		if line != "" {
			next = line + " " + chip
		}
		if ansi.StringWidth(next) <= width || line == "" {
			line = next
			continue
		}
		if inline {
			break
		}
		lines = append(lines, line)
		line = chip
	}
	lines = append(lines, line)
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], width, "…")
	}
	return strings.Join(lines, "\n")
}

// Card is one grid cell: bordered title, wrapped description, badge line and
// a muted footer.
type Card struct {
	Title       string
	Description string
	Chips       []Chip
	Footer      string
	Selected    bool
}

func (c Card) Render(width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	inner := width - 4
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(colorOverlay1)

	lines := []string{titleStyle.Render(ansi.Truncate(c.Title, inner, "…"))}
	if chips := Chips(c.Chips, inner, true); chips != "" {
		lines = append(lines, chips)
	}
	descRows := max(0, height-2-len(lines)-1)
	if c.Description != "" && descRows > 0 {
		wrapped := strings.Split(ansi.Wordwrap(c.Description, inner, ""), "\n")
		if len(wrapped) > descRows {
			wrapped = wrapped[:descRows]
			last := descRows - 1
			wrapped[last] = ansi.Truncate(wrapped[last]+"…", inner, "…")
		}
		lines = append(lines, wrapped...)
	}
	return chrome(lines, c.Footer, c.Selected, width, height, mutedStyle)
}

// Skeleton is the loading placeholder of a card.
type Skeleton struct {
	TitleWidth       int
	DescriptionLines int
	Badges           int
}

func (s Skeleton) Render(width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	inner := width - 4
	bar := lipgloss.NewStyle().Foreground(colorSurface1)
	lines := []string{bar.Render(strings.Repeat("▇", min(max(1, s.TitleWidth), inner)))}
	if s.Badges > 0 {
		chips := make([]string, s.Badges)
		for i := range chips {
			chips[i] = strings.Repeat("▂", 6)
		}
		lines = append(lines, bar.Render(ansi.Truncate(strings.Join(chips, " "), inner, "")))
	}
	for i := 0; i < s.DescriptionLines && len(lines) < height-3; i++ {
		w := inner
		if i == s.DescriptionLines-1 {
			w = inner * 2 / 3
		}
		lines = append(lines, bar.Render(strings.Repeat("▁", max(1, w))))
	}
	return chrome(lines, "", false, width, height, bar)
}

// chrome draws the border around lines and pins footer to the last inner row.
func chrome(lines []string, footer string, selected bool, width, height int, footerStyle lipgloss.Style) string {
	inner := width - 4
	rows := height - 2
	body := make([]string, rows)
	for i := range body {
		if i < len(lines) {
			body[i] = cell(lines[i], inner)
		} else {
			body[i] = strings.Repeat(" ", inner)
		}
	}
	if footer != "" && rows > len(lines) {
		body[rows-1] = cell(footerStyle.Render(ansi.Truncate(footer, inner, "")), inner)
	}
	border := colorOverlay0
	if selected {
		border = colorBlue
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(strings.Join(body, "\n"))
}
