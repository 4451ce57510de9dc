// Package ui renders the generator's terminal output: a framed intro,
// step lines, boxed notes, a spinner and a progress bar. Every component
// degrades to plain text when colour is disabled or no terminal is attached.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette hex colours, used for dark backgrounds.
const (
	ColorPrimary   = "#22C55E"
	ColorSecondary = "#0EA5E9"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorMuted     = "#9CA3AF"
	ColorBorder    = "#4B5563"
)

// Colors holds the colours a Theme hands to bubbles components.
type Colors struct {
	Primary   string
	Secondary string
}

// Theme is the style set shared by the console, spinner and progress bar.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Bar     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Box     lipgloss.Style
}

// NewTheme returns the default theme. NO_COLOR (any non-empty value)
// disables all styling.
func NewTheme() *Theme {
	return newTheme(os.Getenv("NO_COLOR") != "")
}

// PlainTheme returns a theme without any styling.
func PlainTheme() *Theme {
	return newTheme(true)
}

func newTheme(noColor bool) *Theme {
	t := &Theme{
		NoColor: noColor,
		Colors:  Colors{Primary: ColorPrimary, Secondary: ColorSecondary},
	}
	if noColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Bar, t.Success, t.Warning, t.Error, t.Muted = plain, plain, plain, plain, plain, plain
		t.Box = plain.PaddingLeft(2)
		return t
	}

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0B0F14"}).
		Background(lipgloss.AdaptiveColor{Light: "#15803D", Dark: ColorPrimary}).
		Padding(0, 1)
	t.Bar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder})
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: ColorSuccess})
	t.Warning = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: ColorWarning})
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: ColorError})
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: ColorMuted})
	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: ColorBorder}).
		Padding(0, 1)
	return t
}
