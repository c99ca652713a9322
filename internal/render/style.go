package render

import "github.com/charmbracelet/lipgloss"

var (
	colorRed    = lipgloss.Color("#fb4934")
	colorYellow = lipgloss.Color("#fabd2f")
	colorGreen  = lipgloss.Color("#8ec07c")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

var (
	styleRed    = lipgloss.NewStyle().Foreground(colorRed)
	styleYellow = lipgloss.NewStyle().Foreground(colorYellow)
	styleGreen  = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
)

// ddayStyle colors a countdown: overdue red, within a week yellow.
func ddayStyle(days int) lipgloss.Style {
	switch {
	case days < 0:
		return styleRed
	case days <= 7:
		return styleYellow
	default:
		return styleGreen
	}
}
