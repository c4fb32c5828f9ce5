package ui

import (
	"strings"
	"testing"
)

func TestGetContextHelp(t *testing.T) {
	tests := []struct {
		ctx  Context
		want string
	}{
		{ContextTree, "Check row and everything under it"},
		{ContextDetails, "Selection report"},
		{ContextSplit, "Hide the report"},
		{Context(99), "This help"},
	}
	for _, tt := range tests {
		if got := GetContextHelp(tt.ctx); !strings.Contains(got, tt.want) {
			t.Errorf("GetContextHelp(%d) missing %q", tt.ctx, tt.want)
		}
	}
}

func TestRenderContextHelpFitsSmallScreens(t *testing.T) {
	for _, width := range []int{10, 40, 120} {
		out := RenderContextHelp(ContextTree, testTheme(), width, 40)
		if !strings.Contains(out, "Quick Reference") {
			t.Errorf("width %d: missing title", width)
		}
	}
}

func TestContextHelpLinesFitModal(t *testing.T) {
	for ctx, content := range ContextHelpContent {
		for _, line := range strings.Split(content, "\n") {
			if len([]rune(line)) > 46 {
				t.Errorf("context %d: line too wide for the modal: %q", ctx, line)
			}
		}
	}
}
