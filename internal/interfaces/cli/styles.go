package cli

import "github.com/charmbracelet/lipgloss"

const (
	ColorSuccess   = "#10B981"
	ColorError     = "#EF4444"
	ColorSecondary = "#6B7280"
)

var (
	changeCreateStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorSuccess))

	changeDeleteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorError))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondary))
)
