// Package ui holds the terminal styles shared by the CLI commands.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Status colors
	PassStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	FailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// Text styles
	BoldStyle = lipgloss.NewStyle().Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	// CommandStyle renders recorded commands in dry-run output.
	CommandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2)
)

// Symbols used in front of check and validation lines.
const (
	SymbolPass = "✓"
	SymbolWarn = "!"
	SymbolFail = "✗"
	SymbolSkip = "-"
)

// Pass renders a success line.
func Pass(msg string) string {
	return PassStyle.Render(SymbolPass) + " " + msg
}

// Warn renders a warning line.
func Warn(msg string) string {
	return WarnStyle.Render(SymbolWarn) + " " + msg
}

// Fail renders a failure line.
func Fail(msg string) string {
	return FailStyle.Render(SymbolFail) + " " + msg
}

// Skip renders a dimmed line for something that was not checked.
func Skip(msg string) string {
	return DimStyle.Render(SymbolSkip + " " + msg)
}

// Hint renders an indented, dimmed follow-up line.
func Hint(msg string) string {
	return DimStyle.Render("    " + msg)
}
