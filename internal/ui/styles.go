package ui

import (
	"github.com/charmbracelet/lipgloss"

	"carbontrack/internal/domain"
)

// schemeColors maps each color scheme to its primary accent, matching the
// palette the web version applied as CSS variables.
var schemeColors = map[domain.ColorScheme]struct {
	primary string
	hover   string
}{
	domain.SchemeBlue:   {primary: "#3b82f6", hover: "#2563eb"},
	domain.SchemeGreen:  {primary: "#10b981", hover: "#059669"},
	domain.SchemePurple: {primary: "#8b5cf6", hover: "#7c3aed"},
	domain.SchemeAmber:  {primary: "#f59e0b", hover: "#d97706"},
}

// Styles holds the lipgloss styles for the current theme. Rebuilt whenever
// the theme store changes; this is the terminal analog of applying the theme
// to the document.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Menu      lipgloss.Style
	MenuItem  lipgloss.Style
	Selected  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Positive  lipgloss.Style
	Negative  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Panel     lipgloss.Style
	StatusBar lipgloss.Style
	Bar       lipgloss.Style
}

// NewStyles builds the style set for the resolved theme mode and scheme.
func NewStyles(mode domain.ThemeMode, scheme domain.ColorScheme) Styles {
	accent := schemeColors[scheme]
	if accent.primary == "" {
		accent = schemeColors[domain.SchemeBlue]
	}

	text := lipgloss.Color("236")
	muted := lipgloss.Color("245")
	if mode == domain.ThemeDark {
		text = lipgloss.Color("252")
		muted = lipgloss.Color("243")
	}
	primary := lipgloss.Color(accent.primary)

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(primary),
		Tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(primary).Padding(0, 1).Underline(true),
		Menu:      lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(muted).PaddingRight(1).MarginRight(1),
		MenuItem:  lipgloss.NewStyle().Foreground(text),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent.hover)).Reverse(true),
		Label:     lipgloss.NewStyle().Foreground(muted),
		Value:     lipgloss.NewStyle().Foreground(text),
		Positive:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
		Negative:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		Panel:     lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1),
		StatusBar: lipgloss.NewStyle().Foreground(muted),
		Bar:       lipgloss.NewStyle().Foreground(primary),
	}
}
