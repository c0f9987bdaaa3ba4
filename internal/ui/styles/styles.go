// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic colors. ApplyTheme replaces these from the config.
	HighlightColor = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#7C3AED"} // Selected rows, titles, focused borders
	SubtleColor    = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"} // Hints, help text, metadata
	ErrorColor     = lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#EF4444"} // Error messages
	SuccessColor   = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#10B981"} // Confirmations

	// Text
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	SubtleStyle   = lipgloss.NewStyle().Foreground(SubtleColor)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ErrorColor)
	SuccessStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)

	// Layout
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(HighlightColor).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// Form
	LabelStyle        = lipgloss.NewStyle().Foreground(SubtleColor)
	FocusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
)

// rebuild recreates the Style objects from the current color variables.
// Must be called after any color variable changes.
func rebuild() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SubtleColor).
		Padding(0, 1)
	FocusedPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(HighlightColor).
		Padding(0, 1)
	StatusBarStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	LabelStyle = lipgloss.NewStyle().Foreground(SubtleColor)
	FocusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
}
