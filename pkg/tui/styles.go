package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#8E6FF7")
	secondaryColor = lipgloss.Color("#7B8794")
	errorColor     = lipgloss.Color("#E74C3C")
	successColor   = lipgloss.Color("#2ECC71")
	warningColor   = lipgloss.Color("#F39C12")

	activeVoiceStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	voiceStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	lowQuotaStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	counterStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	counterLowStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2C3E50")).
			Foreground(lipgloss.Color("#ECF0F1")).
			Padding(0, 1)

	workingStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34495E"))

	formLabelStyle = lipgloss.NewStyle().
			Foreground(primaryColor)
)
