package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/placetree/pkg/config"
)

// Theme holds the colors and base styles used by every view.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Checked   lipgloss.AdaptiveColor
	Partial   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
}

// DefaultTheme builds the theme for the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#5A3FC0", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#8A6D00", Dark: "#F1FA8C"},
		Highlight: lipgloss.AdaptiveColor{Light: "#006B8F", Dark: "#8BE9FD"},
		Muted:     lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#6272A4"},
		Checked:   lipgloss.AdaptiveColor{Light: "#1E7F34", Dark: "#50FA7B"},
		Partial:   lipgloss.AdaptiveColor{Light: "#B35C00", Dark: "#FFB86C"},
		Error:     lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF5555"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"})
	t.Selected = r.NewStyle().
		Background(lipgloss.AdaptiveColor{Light: "#E6E0F8", Dark: "#44475A"}).
		Bold(true)
	t.Border = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)

	return t
}

// ThemeForMode returns the default theme with the background forced to
// "dark" or "light". Any other mode restores detectedDark, the background
// the renderer reported before anything was forced.
func ThemeForMode(r *lipgloss.Renderer, mode string, detectedDark bool) Theme {
	switch mode {
	case config.ThemeDark:
		r.SetHasDarkBackground(true)
	case config.ThemeLight:
		r.SetHasDarkBackground(false)
	default:
		r.SetHasDarkBackground(detectedDark)
	}
	return DefaultTheme(r)
}
