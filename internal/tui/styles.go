package tui

import "github.com/charmbracelet/lipgloss"

var (
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1).
			Width(buttonWidth*4 - 2).
			Align(lipgloss.Right).
			Bold(true)

	sentinelStyle = displayStyle.
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	buttonStyle = lipgloss.NewStyle().
			Width(buttonWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("250"))

	operatorButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("212"))

	pressedButtonStyle = buttonStyle.
				Bold(true).
				Reverse(true)
)

const buttonWidth = 6
