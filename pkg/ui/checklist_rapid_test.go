package ui

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/placetree/pkg/store"
)

// TestChecklistSelectionProperties drives random toggles, inserts and renames
// and checks the selection invariants after every step.
func TestChecklistSelectionProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s, err := store.New()
		if err != nil {
			rt.Fatalf("store.New: %v", err)
		}
		c := NewChecklistTree(s, ChecklistOptions{})
		defer c.Close()

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			row := c.Rows()[rapid.IntRange(0, c.Len()-1).Draw(rt, "row")]
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				c.ToggleSelection(row)
				want := c.IsSelected(row)
				for _, d := range c.Descendants(row) {
					if c.IsSelected(d) != want {
						rt.Fatalf("descendant %q of %q not forced to %v", d.Label, row.Label, want)
					}
				}
				if c.DescendantsAllSelected(row) != want && len(c.Descendants(row)) > 0 {
					rt.Fatalf("DescendantsAllSelected(%q) = %v after toggle to %v", row.Label, !want, want)
				}
			case 1:
				pos := c.IndexOf(row)
				if _, err := c.AddNewPlace(row); err != nil {
					rt.Fatalf("AddNewPlace(%q): %v", row.Label, err)
				}
				if c.Rows()[pos] != row || !row.Expandable {
					rt.Fatalf("parent row %q lost identity or expandability", row.Label)
				}
			case 2:
				label := rapid.StringMatching(`[a-z]{0,6}`).Draw(rt, "label")
				pos := c.IndexOf(row)
				if err := c.SaveNode(row, label); err != nil {
					rt.Fatalf("SaveNode(%q): %v", row.Label, err)
				}
				if c.Rows()[pos] != row || row.Label != label {
					rt.Fatalf("rename did not keep row identity at %d", pos)
				}
			}

			prevDepth := -1
			for _, r := range c.Rows() {
				if c.DescendantsAllSelected(r) && c.DescendantsPartiallySelected(r) {
					rt.Fatalf("%q is both fully and partially selected", r.Label)
				}
				if r.Depth > prevDepth+1 {
					rt.Fatalf("%q jumps from depth %d to %d", r.Label, prevDepth, r.Depth)
				}
				prevDepth = r.Depth
			}
		}
	})
}
