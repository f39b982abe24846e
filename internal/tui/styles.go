package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#2196F3")
	muted  = lipgloss.Color("#8a8f98")
	danger = lipgloss.Color("#e53935")
)

// Styles holds the pre-built styles used by View.
type Styles struct {
	Header       lipgloss.Style
	ActiveHeader lipgloss.Style
	Cell         lipgloss.Style
	Cursor       lipgloss.Style
	FocusLabel   lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Foreground(muted),
		ActiveHeader: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Cell:         lipgloss.NewStyle(),
		Cursor:       lipgloss.NewStyle().Reverse(true),
		FocusLabel:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Status:       lipgloss.NewStyle().Foreground(muted),
		Error:        lipgloss.NewStyle().Foreground(danger),
		Help:         lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}
