package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E8E8E3")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#2F7FD4")
	selectFg  = lipgloss.Color("#F2B441")
	gridFg    = lipgloss.Color("#2C3A4A")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// hex strings for the braille canvas (styled per cell, not per line)
const (
	selectedHex = "#F2B441"
	outlineHex  = "#9AA4AF"
	gridHex     = "#2C3A4A"
	hoverHex    = "#FFA500"
)
