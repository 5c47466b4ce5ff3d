package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/catalog/internal/content"
)

// Catppuccin Mocha.
const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

var badgeColors = map[content.BadgeKind]lipgloss.Color{
	content.BadgeCategory:  colorMauve,
	content.BadgeTag:       colorLavender,
	content.BadgeModel:     colorPeach,
	content.BadgeTool:      colorYellow,
	content.BadgeKeyword:   colorTeal,
	content.BadgeTrigger:   colorRed,
	content.BadgeInclusion: colorGreen,
	content.BadgePattern:   colorSky,
}

var (
	headerBarStyle = lipgloss.NewStyle().Background(colorMantle).Foreground(colorText)
	appNameStyle   = lipgloss.NewStyle().Background(colorMantle).Foreground(colorBlue).Bold(true).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().
				Background(colorMantle).
				Foreground(colorOverlay1).
				Padding(0, 1)

	statusBarStyle    = lipgloss.NewStyle().Foreground(colorGreen).Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().Foreground(colorRed).Background(colorSurface0)

	emptyHeadlineStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)
	emptySublineStyle  = lipgloss.NewStyle().Foreground(colorSubtext0)
	mutedStyle         = lipgloss.NewStyle().Foreground(colorOverlay1)
	labelStyle         = lipgloss.NewStyle().Foreground(colorSubtext0).Bold(true)
)
