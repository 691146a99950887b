package ui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("39")
	successColor   = lipgloss.Color("42")
	errorColor     = lipgloss.Color("196")
	warningColor   = lipgloss.Color("220")
	mutedColor     = lipgloss.Color("241")
	highlightColor = lipgloss.Color("205")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	activeEditorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(highlightColor).
				Padding(1)

	inactiveEditorStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(mutedColor).
				Padding(1)

	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(1)

	statusBarStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	statusBarErrorStyle = lipgloss.NewStyle().
				Background(errorColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)

	statusBarSuccessStyle = lipgloss.NewStyle().
				Background(successColor).
				Foreground(lipgloss.Color("0")).
				Padding(0, 1)
)

// verdictStyle colors one result row by its outcome.
func verdictStyle(status string) lipgloss.Style {
	switch status {
	case "passed":
		return successStyle
	case "wrong_answer", "runtime_error", "compile_error", "internal_error":
		return errorStyle
	case "time_limit_exceeded", "memory_limit_exceeded":
		return warningStyle
	default:
		return mutedStyle
	}
}
