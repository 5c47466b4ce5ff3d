package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/jask/catalog/internal/content"
	"github.com/jask/catalog/internal/format"
)

var noColor bool

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#89dceb"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

func colorize(style lipgloss.Style, text string) string {
	if noColor || !isatty.IsTerminal(os.Stderr.Fd()) {
		return text
	}
	return style.Render(text)
}

func printSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(successStyle, "✓ "+fmt.Sprintf(format, args...)))
}

func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(errorStyle, "✗ "+fmt.Sprintf(format, args...)))
}

func printStep(format string, args ...any) {
	fmt.Fprintln(os.Stderr, colorize(stepStyle, "→ "+fmt.Sprintf(format, args...)))
}

func printStatus(label string, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", colorize(labelStyle, label+":"), fmt.Sprintf(format, args...))
}

// printItems writes items as a table. Titles and badges come from the
// registry, so the table matches what the cards show.
func printItems(w io.Writer, items []content.Item, dateFormat, empty string) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, empty)
		return err
	}
	registry, err := content.NewDefaultRegistry()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		title, err := registry.ResolveTitle(item)
		if err != nil {
			return err
		}
		badges, err := registry.ResolveBadges(item)
		if err != nil {
			return err
		}
		labels := make([]string, len(badges))
		for i, b := range badges {
			labels[i] = b.Label
		}
		meta := item.Info()
		rows = append(rows, []string{
			string(item.Variant()),
			title,
			strings.Join(labels, ", "),
			format.Date(meta.LastModified(), dateFormat),
		})
	}

	if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		for _, r := range rows {
			if _, err := fmt.Fprintln(w, strings.Join(r, "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))).
		Headers("TYPE", "TITLE", "BADGES", "UPDATED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err = fmt.Fprintln(w, t.String())
	return err
}
