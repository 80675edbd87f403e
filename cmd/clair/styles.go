package main

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	statementStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	expressionStyle = lipgloss.NewStyle().
			Foreground(successColor)

	detailStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)
