package ui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/placetree/pkg/config"
)

func TestThemeForModeRestoresDetection(t *testing.T) {
	for _, detected := range []bool{true, false} {
		r := lipgloss.NewRenderer(io.Discard)

		ThemeForMode(r, config.ThemeLight, detected)
		if r.HasDarkBackground() {
			t.Errorf("detected=%v: light mode should force a light background", detected)
		}
		ThemeForMode(r, config.ThemeDark, detected)
		if !r.HasDarkBackground() {
			t.Errorf("detected=%v: dark mode should force a dark background", detected)
		}

		theme := ThemeForMode(r, config.ThemeAuto, detected)
		if got := r.HasDarkBackground(); got != detected {
			t.Errorf("auto after a forced mode: got dark=%v, want %v", got, detected)
		}
		if theme.Renderer != r {
			t.Error("theme should be bound to the given renderer")
		}
	}
}

func TestModel_ConfigReloadBackToAuto(t *testing.T) {
	m := newTestModel(t, config.Default(), "")
	detected := m.detectedDark

	forced := config.Default()
	if detected {
		forced.Theme = config.ThemeLight
	} else {
		forced.Theme = config.ThemeDark
	}
	m = send(t, m, ConfigReloadedMsg{Config: forced})
	if m.renderer.HasDarkBackground() == detected {
		t.Fatalf("theme %q should override the detected background", forced.Theme)
	}

	m = send(t, m, ConfigReloadedMsg{Config: config.Default()})
	if got := m.renderer.HasDarkBackground(); got != detected {
		t.Errorf("reload to auto: got dark=%v, want detected %v", got, detected)
	}
}
