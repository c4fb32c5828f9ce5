// tree.go - Checklist tree view over the flattened place rows
package ui

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/placetree/pkg/config"
	"github.com/vanderheijden86/placetree/pkg/export"
)

// TreeState is the persisted expand/collapse state of the tree view.
// It is saved to <state-dir>/tree-state.json.
//
// File format (JSON):
//
//	{
//	  "version": 1,
//	  "expanded": {
//	    "North America/USA": true,
//	    "South America ": false
//	  }
//	}
//
// Only deviations from the default expansion are stored. Rows not in the map
// use the default (expanded when shallower than the configured expand depth).
// A missing or corrupted file means defaults.
type TreeState struct {
	Version  int             `json:"version"`
	Expanded map[string]bool `json:"expanded"` // label path -> explicit state
}

// TreeStateVersion is the current schema version for tree persistence
const TreeStateVersion = 1

// treeStateFileName is the filename for persisted tree state
const treeStateFileName = config.TreeStateFile

// TreeStatePath returns the path to the tree state file inside stateDir.
func TreeStatePath(stateDir string) string {
	return filepath.Join(stateDir, treeStateFileName)
}

// pathKey joins a label path into a TreeState key.
func pathKey(path []string) string {
	return strings.Join(path, "/")
}

// TreeModel renders the visible rows of a ChecklistTree and owns the cursor.
type TreeModel struct {
	checklist *ChecklistTree
	visible   []*FlatNode // rows whose ancestors are expanded

	cursor         int // index into visible
	viewportOffset int // first rendered index into visible
	width          int
	height         int
	theme          Theme

	stateDir string // empty disables persistence
}

// NewTreeModel creates a tree view over c.
func NewTreeModel(c *ChecklistTree, theme Theme) TreeModel {
	t := TreeModel{
		checklist: c,
		theme:     theme,
	}
	t.Refresh()
	return t
}

// SetTheme replaces the theme.
func (t *TreeModel) SetTheme(theme Theme) {
	t.theme = theme
}

// SetSize updates the available dimensions for the tree view
func (t *TreeModel) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// SetStateDir sets the directory used for tree-state.json. An empty dir
// disables persistence entirely.
func (t *TreeModel) SetStateDir(dir string) {
	t.stateDir = dir
}

// Refresh rebuilds the visible rows after the checklist changed, keeping the
// cursor on the same row when it is still visible.
func (t *TreeModel) Refresh() {
	current := t.SelectedNode()
	t.visible = t.checklist.VisibleRows()
	if current != nil && t.SelectRow(current) {
		return
	}
	t.clampCursor()
}

func (t *TreeModel) clampCursor() {
	if t.cursor >= len(t.visible) {
		t.cursor = len(t.visible) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.ensureCursorVisible()
}

// SelectedNode returns the row under the cursor, or nil if there are no rows.
func (t *TreeModel) SelectedNode() *FlatNode {
	if t.cursor >= 0 && t.cursor < len(t.visible) {
		return t.visible[t.cursor]
	}
	return nil
}

// SelectRow moves the cursor to node if it is visible.
func (t *TreeModel) SelectRow(node *FlatNode) bool {
	for i, row := range t.visible {
		if row == node {
			t.cursor = i
			t.ensureCursorVisible()
			return true
		}
	}
	return false
}

// Cursor returns the cursor position among visible rows.
func (t *TreeModel) Cursor() int {
	return t.cursor
}

// VisibleCount returns the number of visible rows.
func (t *TreeModel) VisibleCount() int {
	return len(t.visible)
}

// MoveDown moves the cursor down.
func (t *TreeModel) MoveDown() {
	if t.cursor < len(t.visible)-1 {
		t.cursor++
	}
	t.ensureCursorVisible()
}

// MoveUp moves the cursor up.
func (t *TreeModel) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
	t.ensureCursorVisible()
}

// JumpToTop moves cursor to the first row.
func (t *TreeModel) JumpToTop() {
	t.cursor = 0
	t.ensureCursorVisible()
}

// JumpToBottom moves cursor to the last row.
func (t *TreeModel) JumpToBottom() {
	if len(t.visible) > 0 {
		t.cursor = len(t.visible) - 1
	}
	t.ensureCursorVisible()
}

// PageDown moves cursor down by half a viewport.
func (t *TreeModel) PageDown() {
	t.cursor += t.pageSize()
	t.clampCursor()
}

// PageUp moves cursor up by half a viewport.
func (t *TreeModel) PageUp() {
	t.cursor -= t.pageSize()
	t.clampCursor()
}

func (t *TreeModel) pageSize() int {
	if size := t.height / 2; size >= 1 {
		return size
	}
	return 5
}

// JumpToParent moves the cursor to the parent row. A region row stays put.
func (t *TreeModel) JumpToParent() {
	if parent := t.checklist.Parent(t.SelectedNode()); parent != nil {
		t.SelectRow(parent)
	}
}

// ToggleExpand expands or collapses the row under the cursor.
func (t *TreeModel) ToggleExpand() {
	node := t.SelectedNode()
	if node == nil || !node.Expandable {
		return
	}
	t.checklist.ToggleExpand(node)
	t.Refresh()
	t.saveState()
}

// ExpandOrMoveToChild handles the → / l key:
//   - collapsed row with children: expand it
//   - expanded row: move to its first child
//   - leaf: nothing
func (t *TreeModel) ExpandOrMoveToChild() {
	node := t.SelectedNode()
	if node == nil || !node.Expandable {
		return
	}
	if !t.checklist.IsExpanded(node) {
		t.checklist.Expand(node)
		t.Refresh()
		t.saveState()
		return
	}
	if children := t.checklist.Descendants(node); len(children) > 0 {
		t.SelectRow(children[0])
	}
}

// CollapseOrJumpToParent handles the ← / h key:
//   - expanded row: collapse it
//   - otherwise: jump to the parent row
func (t *TreeModel) CollapseOrJumpToParent() {
	node := t.SelectedNode()
	if node == nil {
		return
	}
	if node.Expandable && t.checklist.IsExpanded(node) {
		t.checklist.Collapse(node)
		t.Refresh()
		t.saveState()
		return
	}
	t.JumpToParent()
}

// ExpandAll expands every row.
func (t *TreeModel) ExpandAll() {
	t.checklist.ExpandAll()
	t.Refresh()
	t.saveState()
}

// CollapseAll collapses every row.
func (t *TreeModel) CollapseAll() {
	t.checklist.CollapseAll()
	t.Refresh()
	t.saveState()
}

// ToggleSelection checks or unchecks the row under the cursor and its subtree.
func (t *TreeModel) ToggleSelection() {
	if node := t.SelectedNode(); node != nil {
		t.checklist.ToggleSelection(node)
	}
}

// ensureCursorVisible scrolls so the cursor row is inside the viewport.
func (t *TreeModel) ensureCursorVisible() {
	visibleCount := t.visibleLines()
	if t.cursor < t.viewportOffset {
		t.viewportOffset = t.cursor
	}
	if t.cursor >= t.viewportOffset+visibleCount {
		t.viewportOffset = t.cursor - visibleCount + 1
	}
	if t.viewportOffset < 0 {
		t.viewportOffset = 0
	}
}

func (t *TreeModel) visibleLines() int {
	if t.height <= 0 {
		return 20 // Default
	}
	return t.height
}

// visibleRange returns the [start, end) indices of rows to render.
func (t *TreeModel) visibleRange() (start, end int) {
	if len(t.visible) == 0 {
		return 0, 0
	}
	start = t.viewportOffset
	end = start + t.visibleLines()
	if end > len(t.visible) {
		end = len(t.visible)
		start = end - t.visibleLines()
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// View renders the visible part of the tree.
func (t *TreeModel) View() string {
	if len(t.visible) == 0 {
		return t.renderEmptyState()
	}

	var sb strings.Builder
	start, end := t.visibleRange()
	for i := start; i < end; i++ {
		line := t.renderNode(t.visible[i])
		if i == t.cursor {
			line = t.theme.Selected.Render(line)
		}
		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (t *TreeModel) renderEmptyState() string {
	r := t.theme.Renderer
	return r.NewStyle().Foreground(t.theme.Muted).Render("No places to display.")
}

// renderNode renders one row: branch prefix, expand indicator, checkbox, label.
func (t *TreeModel) renderNode(node *FlatNode) string {
	r := t.theme.Renderer
	var sb strings.Builder

	prefix := t.buildTreePrefix(node)
	sb.WriteString(r.NewStyle().Foreground(t.theme.Muted).Render(prefix))

	sb.WriteString(r.NewStyle().Foreground(t.theme.Secondary).Render(t.getExpandIndicator(node)))
	sb.WriteString(" ")

	box, color := t.checkbox(node)
	sb.WriteString(r.NewStyle().Foreground(color).Render(box))
	sb.WriteString(" ")

	maxLabel := t.width - runewidth.StringWidth(prefix) - 6 // indicator + checkbox + spaces
	if maxLabel < 10 {
		maxLabel = 10
	}
	if t.checklist.HasNoContent(0, node) {
		sb.WriteString(r.NewStyle().Foreground(t.theme.Muted).Italic(true).Render("(new place)"))
	} else {
		sb.WriteString(t.theme.Base.Render(truncateLabel(node.Label, maxLabel)))
	}
	return sb.String()
}

// checkbox picks the checkbox glyph and its color.
func (t *TreeModel) checkbox(node *FlatNode) (string, lipgloss.TerminalColor) {
	mark := t.checklist.Mark(node)
	switch mark {
	case export.Checked:
		return mark.Box(), t.theme.Checked
	case export.Partial:
		return mark.Box(), t.theme.Partial
	default:
		return mark.Box(), t.theme.Muted
	}
}

// buildTreePrefix builds the indentation and branch characters for a row.
func (t *TreeModel) buildTreePrefix(node *FlatNode) string {
	if node.Depth == 0 {
		return ""
	}

	// ancestors from the region down to the direct parent
	var ancestors []*FlatNode
	for p := t.checklist.Parent(node); p != nil; p = t.checklist.Parent(p) {
		ancestors = append([]*FlatNode{p}, ancestors...)
	}

	var sb strings.Builder
	// The region itself draws no column, so skip ancestors[0].
	for i := 1; i < len(ancestors); i++ {
		if t.hasSiblingsBelow(ancestors[i]) {
			sb.WriteString("│   ")
		} else {
			sb.WriteString("    ")
		}
	}
	if t.hasSiblingsBelow(node) {
		sb.WriteString("├── ")
	} else {
		sb.WriteString("└── ")
	}
	return sb.String()
}

// hasSiblingsBelow reports whether another row with node's parent follows
// node's subtree.
func (t *TreeModel) hasSiblingsBelow(node *FlatNode) bool {
	rows := t.checklist.Rows()
	for i := t.checklist.IndexOf(node) + 1; i < len(rows); i++ {
		if rows[i].Depth == node.Depth {
			return true
		}
		if rows[i].Depth < node.Depth {
			return false
		}
	}
	return false
}

// getExpandIndicator returns the expand/collapse indicator for a row.
func (t *TreeModel) getExpandIndicator(node *FlatNode) string {
	if !t.checklist.HasChild(0, node) {
		return "•" // Leaf
	}
	if t.checklist.IsExpanded(node) {
		return "▾"
	}
	return "▸"
}

// truncateLabel truncates by display width with an ellipsis.
func truncateLabel(label string, maxWidth int) string {
	if runewidth.StringWidth(label) <= maxWidth {
		return label
	}
	return runewidth.Truncate(label, maxWidth, "…")
}

// saveState persists the expand/collapse state.
// Errors are logged but do not interrupt the user experience.
func (t *TreeModel) saveState() {
	if t.stateDir == "" {
		return
	}

	state := &TreeState{
		Version:  TreeStateVersion,
		Expanded: make(map[string]bool),
	}
	for _, row := range t.checklist.Rows() {
		if !row.Expandable {
			continue
		}
		expanded := t.checklist.IsExpanded(row)
		if expanded == (row.Depth < t.checklist.opts.ExpandDepth) {
			continue
		}
		path, err := t.checklist.Path(row)
		if err != nil {
			continue
		}
		state.Expanded[pathKey(path)] = expanded
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("warning: failed to marshal tree state: %v", err)
		return
	}

	if err := os.MkdirAll(t.stateDir, 0755); err != nil {
		log.Printf("warning: failed to create state directory %s: %v", t.stateDir, err)
		return
	}

	path := TreeStatePath(t.stateDir)
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("warning: failed to write tree state to %s: %v", path, err)
	}
}

// LoadState restores expand/collapse state from disk.
// A missing file is a first run; a corrupted one is logged and ignored.
func (t *TreeModel) LoadState() {
	if t.stateDir == "" {
		return
	}
	path := TreeStatePath(t.stateDir)
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var state TreeState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("warning: invalid tree state file, using defaults: %v", err)
		return
	}
	t.applyState(&state)
	t.Refresh()
}

// applyState sets expansion on rows named in state. Unknown paths are
// silently ignored.
func (t *TreeModel) applyState(state *TreeState) {
	if state == nil || len(state.Expanded) == 0 {
		return
	}
	for _, row := range t.checklist.Rows() {
		path, err := t.checklist.Path(row)
		if err != nil {
			continue
		}
		if expanded, ok := state.Expanded[pathKey(path)]; ok && row.Expandable {
			t.checklist.SetExpanded(row, expanded)
		}
	}
}
