// Package styles holds the netreach TUI palette and the lipgloss styles
// shared by the menu, calculator and scenarios views.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette. Confidence levels reuse Success, Warning and
// Error so a scenario reads the same in the calculator and the scenarios table.
type Theme struct {
	Primary   lipgloss.Color // view titles, menu cursor
	Secondary lipgloss.Color // section headings, focused field
	Text      lipgloss.Color
	Muted     lipgloss.Color // labels, hints, data source line
	Success   lipgloss.Color // net reach, high confidence
	Warning   lipgloss.Color // medium confidence
	Error     lipgloss.Color // low confidence, failed calculations
	Border    lipgloss.Color // table rules
	Bar       lipgloss.Color // status bar background
}

// DefaultTheme returns the dark palette used unless another theme is set.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#F97316"),
		Secondary: lipgloss.Color("#38BDF8"),
		Text:      lipgloss.Color("#CDD6F4"),
		Muted:     lipgloss.Color("#6C7086"),
		Success:   lipgloss.Color("#A6E3A1"),
		Warning:   lipgloss.Color("#F9E2AF"),
		Error:     lipgloss.Color("#F38BA8"),
		Border:    lipgloss.Color("#45475A"),
		Bar:       lipgloss.Color("#181825"),
	}
}

// Styles are built once from a Theme and passed to every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style // highlighted menu item or scenario row
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Label and FocusedLabel share a width so reach fields line up.
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style

	// Metric renders the headline net reach figure.
	Metric lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style
}

const labelWidth = 14

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text).
			Background(theme.Primary),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(labelWidth),
		FocusedLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			Width(labelWidth),

		Metric: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),

		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		TableBorder: lipgloss.NewStyle().Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
