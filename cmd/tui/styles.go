// Package tui provides terminal rendering for the miridev-mcp command line.
// It uses the Charm Bubble Tea framework for the interactive sign-in form.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the TUI based on modern design principles
var (
	// Primary colors
	primaryColor   = lipgloss.Color("#7C3AED") // Violet
	secondaryColor = lipgloss.Color("#10B981") // Emerald
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	successColor   = lipgloss.Color("#22C55E") // Green

	// Neutral colors
	fgColor     = lipgloss.Color("#CDD6F4") // Light foreground
	mutedColor  = lipgloss.Color("#6C7086") // Muted text
	borderColor = lipgloss.Color("#45475A") // Border
)

// subtitleStyle creates the subtitle/description style
var subtitleStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	Italic(true)

// cursorStyle colors the text input cursor
var cursorStyle = lipgloss.NewStyle().
	Foreground(accentColor)

// helpStyle creates the style for help text at the bottom
var helpStyle = lipgloss.NewStyle().
	Foreground(mutedColor).
	MarginTop(1)

// boxStyle creates a bordered box style
var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor).
	Padding(1, 2)

// successStyle creates style for success messages
var successStyle = lipgloss.NewStyle().
	Foreground(successColor).
	Bold(true)

// errorStyle creates style for error messages
var errorStyle = lipgloss.NewStyle().
	Foreground(errorColor).
	Bold(true)

// headerStyle creates the header/banner style
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(fgColor).
	Background(primaryColor).
	Padding(0, 2).
	MarginBottom(1)

// inputLabelStyle creates the style for input labels
var inputLabelStyle = lipgloss.NewStyle().
	Foreground(secondaryColor).
	Bold(true)

// RenderSuccess renders a titled success box.
func RenderSuccess(title, body string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render("✅ "+title),
		"",
		body,
	))
}

// RenderFailure renders a titled error box.
func RenderFailure(title, body string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("❌ "+title),
		"",
		body,
	))
}

// RenderInfo renders body in a plain box with a header.
func RenderInfo(title, body string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(title),
		body,
	))
}
