package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewMarkdownRenderer(t *testing.T) {
	mr := NewMarkdownRenderer(80)
	if mr == nil {
		t.Fatal("NewMarkdownRenderer returned nil")
	}
	if mr.width != 80 {
		t.Errorf("expected width 80, got %d", mr.width)
	}
	if mr.useTheme {
		t.Error("expected useTheme to be false for NewMarkdownRenderer")
	}
	if mr.theme != nil {
		t.Error("expected theme to be nil for NewMarkdownRenderer")
	}
}

func TestNewMarkdownRendererWithTheme(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))
	mr := NewMarkdownRendererWithTheme(80, theme)
	if !mr.useTheme {
		t.Error("expected useTheme to be true for NewMarkdownRendererWithTheme")
	}
	if mr.theme == nil {
		t.Error("expected theme to be stored")
	}
}

func TestMarkdownRenderer_Render(t *testing.T) {
	mr := NewMarkdownRenderer(80)
	result, err := mr.Render("# Places\n\n- [x] Caracas")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(result, "Places") || !strings.Contains(result, "Caracas") {
		t.Errorf("expected rendered text to keep content, got: %s", result)
	}
}

func TestMarkdownRenderer_RenderNilRenderer(t *testing.T) {
	mr := &MarkdownRenderer{renderer: nil, width: 80}
	result, err := mr.Render("# Test")
	if err != nil {
		t.Fatalf("Render with nil renderer should not error: %v", err)
	}
	if result != "# Test" {
		t.Errorf("expected raw markdown when renderer is nil, got: %s", result)
	}
}

func TestMarkdownRenderer_SetWidth(t *testing.T) {
	mr := NewMarkdownRenderer(80)
	original := mr.renderer

	mr.SetWidth(80)
	if mr.renderer != original {
		t.Error("SetWidth with same width should not recreate renderer")
	}

	mr.SetWidth(0)
	mr.SetWidth(-1)
	if mr.width != 80 {
		t.Errorf("expected invalid widths to be ignored, got %d", mr.width)
	}

	mr.SetWidth(100)
	if mr.width != 100 {
		t.Errorf("expected width 100, got %d", mr.width)
	}
}

func TestMarkdownRenderer_SetWidthWithTheme(t *testing.T) {
	mr := NewMarkdownRenderer(80)
	mr.SetWidthWithTheme(100, DefaultTheme(lipgloss.NewRenderer(nil)))

	if mr.width != 100 {
		t.Errorf("expected width 100, got %d", mr.width)
	}
	if !mr.useTheme || mr.theme == nil {
		t.Error("SetWidthWithTheme should switch to the theme")
	}
}

func TestExtractHex(t *testing.T) {
	ac := lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}
	if got := extractHex(ac, false); got != "#ffffff" {
		t.Errorf("expected #ffffff for light mode, got %s", got)
	}
	if got := extractHex(ac, true); got != "#000000" {
		t.Errorf("expected #000000 for dark mode, got %s", got)
	}
}

func TestBuildStyleFromTheme(t *testing.T) {
	theme := DefaultTheme(lipgloss.NewRenderer(nil))

	dark := buildStyleFromTheme(theme, true)
	if dark.Document.Color == nil || *dark.Document.Color != "#F8F8F2" {
		t.Errorf("unexpected dark document color %v", dark.Document.Color)
	}
	if *dark.H1.Color != theme.Primary.Dark {
		t.Errorf("expected H1 in primary color, got %s", *dark.H1.Color)
	}

	light := buildStyleFromTheme(theme, false)
	if *light.Document.Color != "#1A1A1A" {
		t.Errorf("unexpected light document color %s", *light.Document.Color)
	}
}
