package widgets

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the widgets draw with.
const (
	colorBlue     lipgloss.Color = "#89b4fa"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorCrust    lipgloss.Color = "#11111b"
)
