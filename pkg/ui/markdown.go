package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer wraps a glamour renderer and rebuilds it when the width
// or theme changes.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	useTheme bool
	theme    *Theme
	dark     bool
}

// NewMarkdownRenderer creates a renderer with glamour's stock style for the
// detected background.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	mr := &MarkdownRenderer{width: width, dark: lipgloss.HasDarkBackground()}
	mr.rebuild()
	return mr
}

// NewMarkdownRendererWithTheme creates a renderer whose colors follow theme.
func NewMarkdownRendererWithTheme(width int, theme Theme) *MarkdownRenderer {
	mr := &MarkdownRenderer{
		width:    width,
		useTheme: true,
		theme:    &theme,
		dark:     theme.Renderer.HasDarkBackground(),
	}
	mr.rebuild()
	return mr
}

func (mr *MarkdownRenderer) rebuild() {
	var style ansi.StyleConfig
	switch {
	case mr.useTheme && mr.theme != nil:
		style = buildStyleFromTheme(*mr.theme, mr.dark)
	case mr.dark:
		style = styles.DarkStyleConfig
	default:
		style = styles.LightStyleConfig
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(mr.width),
	)
	if err != nil {
		mr.renderer = nil
		return
	}
	mr.renderer = r
}

// Render renders markdown. Without a renderer the input is returned as is.
func (mr *MarkdownRenderer) Render(markdown string) (string, error) {
	if mr.renderer == nil {
		return markdown, nil
	}
	return mr.renderer.Render(markdown)
}

// SetWidth rebuilds the renderer for a new positive width.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width <= 0 || width == mr.width {
		return
	}
	mr.width = width
	mr.rebuild()
}

// SetWidthWithTheme switches to theme colors and a new width.
func (mr *MarkdownRenderer) SetWidthWithTheme(width int, theme Theme) {
	if width > 0 {
		mr.width = width
	}
	mr.useTheme = true
	mr.theme = &theme
	mr.dark = theme.Renderer.HasDarkBackground()
	mr.rebuild()
}

// extractHex picks the light or dark side of an adaptive color.
func extractHex(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}

// buildStyleFromTheme starts from glamour's stock style and recolors the
// parts the selection report uses.
func buildStyleFromTheme(theme Theme, dark bool) ansi.StyleConfig {
	cfg := styles.LightStyleConfig
	base := lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	if dark {
		cfg = styles.DarkStyleConfig
	}

	str := func(s string) *string { return &s }

	cfg.Document.Color = str(extractHex(base, dark))
	cfg.H1.Color = str(extractHex(theme.Primary, dark))
	cfg.H2.Color = str(extractHex(theme.Highlight, dark))
	cfg.Strong.Color = str(extractHex(theme.Secondary, dark))
	cfg.Emph.Color = str(extractHex(theme.Muted, dark))
	return cfg
}
