package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the prompt; 256-color codes degrade cleanly on basic terminals.
var (
	colorAccent = lipgloss.Color("39")  // blue
	colorDanger = lipgloss.Color("196") // red
	colorFaint  = lipgloss.Color("240") // dark gray
)

type promptStyles struct {
	Title lipgloss.Style
	Input lipgloss.Style
	Error lipgloss.Style
	Help  lipgloss.Style
}

func defaultPromptStyles() promptStyles {
	return promptStyles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Input: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(colorDanger),
		Help:  lipgloss.NewStyle().Foreground(colorFaint).MarginTop(1),
	}
}
