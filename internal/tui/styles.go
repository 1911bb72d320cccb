package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor     = lipgloss.Color("#ff8c00")
	paperColor      = lipgloss.Color("#fdfdfd")
	gridColor       = lipgloss.Color("#ceebfb")
	inkFallback     = lipgloss.Color("#000000")
	correctColor    = lipgloss.Color("#27ae60")
	incorrectColor  = lipgloss.Color("#c0392b")
	bubbleTextColor = lipgloss.Color("#1d1d1d")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	taglineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)

	paperStyle     = lipgloss.NewStyle().Background(paperColor)
	gridDotStyle   = lipgloss.NewStyle().Foreground(gridColor).Background(paperColor)
	captionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3c3c3c")).Background(paperColor).Italic(true)
	correctStyle   = lipgloss.NewStyle().Bold(true).Foreground(correctColor).Background(paperColor)
	wrongStyle     = lipgloss.NewStyle().Bold(true).Foreground(incorrectColor).Background(paperColor)
	symbolKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(paperColor)
	bubbleStyle    = lipgloss.NewStyle().Foreground(bubbleTextColor).Background(lipgloss.Color("#fff4d0"))
	bubbleEdge     = lipgloss.NewStyle().Foreground(accentColor).Background(lipgloss.Color("#fff4d0"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f5af0")).Background(paperColor)
)

func inkStyle(hex string) lipgloss.Style {
	color := inkFallback
	if hex != "" {
		color = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Foreground(color).Background(paperColor)
}
