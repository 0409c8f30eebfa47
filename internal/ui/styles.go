package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Strikethrough(true).
			Faint(true)

	cursorStyle = lipgloss.NewStyle().
			Bold(true)

	placeholderStyle = lipgloss.NewStyle().
				Faint(true)

	helpStyle = lipgloss.NewStyle().
			Faint(true).
			MarginTop(1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3).
			MarginTop(1)

	alertTitleStyle = lipgloss.NewStyle().
			Bold(true)
)
