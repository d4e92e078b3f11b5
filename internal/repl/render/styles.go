// Package render formats console output: results, errors, the variable
// table, help text and the welcome banner.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI color codes
const (
	ColorCyan    = lipgloss.Color("12") // Banner title
	ColorYellow  = lipgloss.Color("11") // Operators, banner values
	ColorGreen   = lipgloss.Color("10") // Numbers, known names
	ColorRed     = lipgloss.Color("9")  // Errors
	ColorGray    = lipgloss.Color("8")  // Dim/secondary (types, hints)
	ColorMagenta = lipgloss.Color("13") // Strings
	ColorBlue    = lipgloss.Color("12") // Keywords
)

// Symbols
const (
	SymbolError         = "✗" // Error
	SymbolSystemMessage = "→" // System message
)

// Styles groups the lipgloss styles used by a Renderer. They are bound to a
// lipgloss renderer so that color can be switched off per output.
type Styles struct {
	Error         lipgloss.Style
	Dim           lipgloss.Style
	SystemMessage lipgloss.Style
	Title         lipgloss.Style
	Value         lipgloss.Style
	Hint          lipgloss.Style
}

// NewStyles builds the style set on top of lr.
func NewStyles(lr *lipgloss.Renderer) Styles {
	return Styles{
		Error:         lr.NewStyle().Foreground(ColorRed),
		Dim:           lr.NewStyle().Foreground(ColorGray),
		SystemMessage: lr.NewStyle().Foreground(ColorGray),
		Title:         lr.NewStyle().Foreground(ColorCyan).Bold(true),
		Value:         lr.NewStyle().Foreground(ColorYellow),
		Hint:          lr.NewStyle().Foreground(ColorGray).Italic(true),
	}
}
