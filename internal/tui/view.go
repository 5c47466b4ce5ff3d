package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/catalog/internal/badge"
	"github.com/jask/catalog/internal/content"
	"github.com/jask/catalog/internal/format"
	"github.com/jask/catalog/internal/grid"
	"github.com/jask/catalog/internal/widgets"
)

func (a *App) View() string {
	width, height := max(a.width, 20), max(a.height, chromeRows+cardHeight)
	body := lipgloss.NewStyle().
		Width(width).
		Height(height - chromeRows).
		MaxHeight(height - chromeRows).
		Render(a.renderBody(width, height-chromeRows))
	base := strings.Join([]string{
		a.renderHeader(width),
		body,
		a.renderStatus(width),
		a.renderFooter(width),
	}, "\n")

	if a.detail != nil {
		base = widgets.RenderPopup(base, a.detailPopup(width), width, height)
	}
	if a.search.IsOpen() {
		base = widgets.RenderPopup(base, a.searchPopup(), width, height)
	}
	return base
}

func (a *App) renderHeader(width int) string {
	parts := []string{appNameStyle.Render("catalog")}
	for i, t := range a.tabs {
		label := fmt.Sprintf("%d %s", i+1, t.title)
		if t.loaded && t.err == nil && t.variant != "" {
			label += fmt.Sprintf(" (%d)", len(t.items))
		}
		if i == a.active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return renderBar(headerBarStyle, width, strings.Join(parts, ""))
}

func (a *App) renderBody(width, height int) string {
	t := a.tabs[a.active]
	if !t.loaded {
		return a.renderSkeleton(t, width, height)
	}
	if t.err != nil {
		return errorPanel(t.err, width, height)
	}
	switch res := t.result.(type) {
	case grid.EmptyState:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			emptyHeadlineStyle.Render(res.Headline)+"\n"+emptySublineStyle.Render(res.Subline))
	case grid.ItemList:
		cells := make([]widgets.Widget, len(res.Cards))
		for i, c := range res.Cards {
			footer, err := a.cardFooter(c, t.variant == "")
			if err != nil {
				return a.fail(err, width, height)
			}
			cells[i] = widgets.Card{
				Title:       c.Title,
				Description: c.Description,
				Chips:       chips(c.Badges),
				Footer:      footer,
				Selected:    i == t.cursor,
			}
		}
		return widgets.Grid{
			Cells:      cells,
			Columns:    a.ui.Columns,
			CellHeight: cardHeight,
			Gap:        gridGap,
			Offset:     t.offset,
		}.Render(width, height)
	}
	return ""
}

func (a *App) renderSkeleton(t tab, width, height int) string {
	placeholders := grid.RenderSkeleton(a.ui.SkeletonCount)
	if t.variant != "" {
		var err error
		if placeholders, err = t.renderer.RenderVariantSkeleton(t.variant, a.ui.SkeletonCount); err != nil {
			return a.fail(fmt.Errorf("skeleton %s: %w", strings.ToLower(t.title), err), width, height)
		}
	}
	cells := make([]widgets.Widget, len(placeholders))
	for i, p := range placeholders {
		cells[i] = widgets.Skeleton{
			TitleWidth:       p.Shape.TitleWidth,
			DescriptionLines: p.Shape.DescriptionLines,
			Badges:           p.Shape.Badges,
		}
	}
	return widgets.Grid{Cells: cells, Columns: a.ui.Columns, CellHeight: cardHeight, Gap: gridGap}.Render(width, height)
}

func (a *App) cardFooter(c grid.Card, withVariant bool) (string, error) {
	var parts []string
	if withVariant {
		d, err := a.registry.Describe(c.Variant)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimSuffix(d.Label, "s"))
	}
	if c.Hash != "" {
		parts = append(parts, c.Hash)
	}
	if date := format.Date(c.Updated, a.ui.DateFormat); date != "" {
		parts = append(parts, date)
	}
	return strings.Join(parts, " · "), nil
}

// fail reports a configuration error found while drawing and replaces the
// grid with it.
func (a *App) fail(err error, width, height int) string {
	a.setError(err)
	return errorPanel(err, width, height)
}

func errorPanel(err error, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		statusErrBarStyle.Render(ansi.Wordwrap(err.Error(), max(10, width-4), "")))
}

func (a *App) detailPopup(width int) widgets.Popup {
	popupWidth := min(80, max(20, width-10))
	card, err := a.details.Card(a.detail)
	if err != nil {
		a.setError(err)
		return widgets.Popup{Title: "Error", Body: statusErrBarStyle.Render(err.Error()), Width: popupWidth, Border: colorRed}
	}

	inline := false
	if arr, err := badge.ArrangementFor(badge.DetailHeader); err == nil {
		inline = arr.Layout == badge.LayoutInline
	}
	inner := popupWidth - 4

	var sections []string
	if chipLine := widgets.Chips(chips(card.Badges), inner, inline); chipLine != "" {
		sections = append(sections, chipLine)
	}
	if card.Description != "" {
		sections = append(sections, ansi.Wordwrap(card.Description, inner, ""))
	}
	meta := a.detail.Info()
	if body := strings.TrimSpace(meta.Body); body != "" && body != card.Description {
		lines := strings.Split(ansi.Wordwrap(body, inner, ""), "\n")
		if len(lines) > 12 {
			lines = append(lines[:12], mutedStyle.Render("…"))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}
	sections = append(sections, a.gitSection(meta))
	return widgets.Popup{
		Title:  card.Title,
		Body:   strings.Join(sections, "\n\n"),
		Width:  popupWidth,
		Border: colorBlue,
	}
}

func (a *App) gitSection(meta content.Meta) string {
	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-9s", label)) + value
	}
	var rows []string
	if g := meta.Git; g != nil {
		author := g.Author
		if g.AuthorEmail != "" {
			author += " <" + g.AuthorEmail + ">"
		}
		if strings.TrimSpace(author) != "" {
			rows = append(rows, row("Author", author))
		}
		if d := format.Date(g.CreatedDate, a.ui.DateFormat); d != "" {
			rows = append(rows, row("Created", d))
		}
		if d := format.Date(g.LastModifiedDate, a.ui.DateFormat); d != "" {
			rows = append(rows, row("Updated", d))
		}
		if g.HasHash() {
			rows = append(rows, row("Commit", format.ShortHash(g.CommitHash)+"  "+g.CommitMessage))
		}
	} else if d := format.Date(meta.UpdatedAt, a.ui.DateFormat); d != "" {
		rows = append(rows, row("Updated", d))
	}
	if meta.Path != "" {
		rows = append(rows, row("Path", meta.Path))
	}
	return strings.Join(rows, "\n")
}

func (a *App) searchPopup() widgets.Popup {
	hint := mutedStyle.Render("esc close")
	return widgets.Popup{
		Title:  "Search",
		Body:   a.query.View() + "\n\n" + hint,
		Width:  60,
		Border: colorMauve,
	}
}

func (a *App) renderStatus(width int) string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, width, msg)
	}
	return renderBar(statusBarStyle, width, msg)
}

func (a *App) renderFooter(width int) string {
	return renderBar(headerBarStyle, width, a.help.ShortHelpView(a.keys.HelpBindings(a.scope())))
}

func renderBar(style lipgloss.Style, width int, text string) string {
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.Width(width).MaxWidth(width).Render(line)
}

func chips(badges []content.Badge) []widgets.Chip {
	out := make([]widgets.Chip, 0, len(badges))
	for _, b := range badges {
		out = append(out, widgets.Chip{Label: b.Label, Color: badgeColors[b.Kind]})
	}
	return out
}
