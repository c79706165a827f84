package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Shared colors and styles for interactive output
var (
	ColorBlue   = lipgloss.Color("63")  // informational
	ColorGreen  = lipgloss.Color("42")  // success
	ColorYellow = lipgloss.Color("220") // warning
	ColorRed    = lipgloss.Color("196") // error
	ColorGray   = lipgloss.Color("240") // subtle text

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(2)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			PaddingLeft(2)

	// Emoji icons
	IconSuccess = "✅"
	IconWarning = "⚠️ "
	IconError   = "❌"
	IconRocket  = "🚀"
	IconPackage = "📦"
	IconUpload  = "📤"
)
