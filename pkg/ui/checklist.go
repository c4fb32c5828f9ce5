// checklist.go - Flat projection of the place tree with checklist selection
package ui

import (
	"fmt"

	"github.com/vanderheijden86/placetree/pkg/export"
	"github.com/vanderheijden86/placetree/pkg/model"
	"github.com/vanderheijden86/placetree/pkg/store"
)

// FlatID identifies a FlatNode. IDs are never reused.
type FlatID int

// FlatNode is one render row: a place with its depth and whether it can be
// expanded. The same *FlatNode is handed out across re-flattens as long as
// the place behind it keeps its label, so selection and expansion keyed on
// it survive mutations.
type FlatNode struct {
	ID         FlatID
	Label      string
	Depth      int
	Expandable bool
}

// ChecklistOptions tunes ChecklistTree behavior.
type ChecklistOptions struct {
	// ExpandNewParents expands a leaf row when it receives its first child.
	// Rows that already had children are always expanded on insert.
	ExpandNewParents bool

	// ExpandDepth expands newly created rows shallower than this depth.
	// Zero leaves every new row collapsed.
	ExpandDepth int
}

// ChecklistTree subscribes to a store and keeps the flattened rows, the
// flat↔nested identity maps, the expansion state and the selection set.
type ChecklistTree struct {
	store *store.Store
	tree  *model.Tree
	opts  ChecklistOptions

	rows  []*FlatNode
	index map[FlatID]int // row position in rows

	flatToNested map[FlatID]model.NodeID
	nestedToFlat map[model.NodeID]*FlatNode

	selection map[FlatID]struct{}
	expanded  map[FlatID]bool

	nextID      FlatID
	unsubscribe func()
}

// NewChecklistTree creates the adapter and subscribes it to s. The rows are
// available as soon as this returns.
func NewChecklistTree(s *store.Store, opts ChecklistOptions) *ChecklistTree {
	c := &ChecklistTree{
		store:        s,
		opts:         opts,
		index:        make(map[FlatID]int),
		flatToNested: make(map[FlatID]model.NodeID),
		nestedToFlat: make(map[model.NodeID]*FlatNode),
		selection:    make(map[FlatID]struct{}),
		expanded:     make(map[FlatID]bool),
	}
	c.unsubscribe = s.Subscribe(c.handle)
	return c
}

// Close detaches the adapter from its store.
func (c *ChecklistTree) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// SetOptions replaces the options. Already created rows keep their
// expansion state.
func (c *ChecklistTree) SetOptions(opts ChecklistOptions) {
	c.opts = opts
}

func (c *ChecklistTree) handle(ev store.Event) {
	if ev.Kind == store.EventRenamed {
		// Keep the row identity across a rename: the row already shown for
		// this place takes the new label before reuse is checked.
		if flat, ok := c.nestedToFlat[ev.Node]; ok {
			flat.Label = ev.Tree.Label(ev.Node)
		}
	}
	c.flatten(ev.Tree)
}

// flatten rebuilds rows from tree in pre-order, reusing rows whose place
// still carries the same label.
func (c *ChecklistTree) flatten(tree *model.Tree) {
	c.tree = tree
	rows := make([]*FlatNode, 0, tree.Len())

	tree.Walk(func(id model.NodeID, depth int) bool {
		node, _ := tree.Node(id)

		flat, ok := c.nestedToFlat[id]
		if !ok || flat.Label != node.Label {
			flat = c.newRow(depth)
		}
		flat.Label = node.Label
		flat.Depth = depth
		flat.Expandable = node.Kind == model.KindInternal

		c.flatToNested[flat.ID] = id
		c.nestedToFlat[id] = flat
		rows = append(rows, flat)
		return true
	})

	c.rows = rows
	c.index = make(map[FlatID]int, len(rows))
	for i, row := range rows {
		c.index[row.ID] = i
	}
	c.pruneStale()
}

func (c *ChecklistTree) newRow(depth int) *FlatNode {
	flat := &FlatNode{ID: c.nextID}
	c.nextID++
	if depth < c.opts.ExpandDepth {
		c.expanded[flat.ID] = true
	}
	return flat
}

// pruneStale drops rows that were replaced during the last flatten.
func (c *ChecklistTree) pruneStale() {
	for id := range c.flatToNested {
		if _, live := c.index[id]; !live {
			delete(c.flatToNested, id)
			delete(c.selection, id)
			delete(c.expanded, id)
		}
	}
	for nid, flat := range c.nestedToFlat {
		if _, live := c.index[flat.ID]; !live || !c.tree.Has(nid) {
			delete(c.nestedToFlat, nid)
		}
	}
}

// Rows returns every row in pre-order. The slice must not be modified.
func (c *ChecklistTree) Rows() []*FlatNode {
	return c.rows
}

// Len returns the number of rows.
func (c *ChecklistTree) Len() int {
	return len(c.rows)
}

// IndexOf returns the row position of node, or -1 if it is not a current row.
func (c *ChecklistTree) IndexOf(node *FlatNode) int {
	if node == nil {
		return -1
	}
	i, ok := c.index[node.ID]
	if !ok || c.rows[i] != node {
		return -1
	}
	return i
}

// nested resolves the place behind a row.
func (c *ChecklistTree) nested(node *FlatNode) (model.NodeID, error) {
	if c.IndexOf(node) < 0 {
		id := -1
		if node != nil {
			id = int(node.ID)
		}
		return model.NoNode, &model.NotFoundError{Kind: "row", ID: id}
	}
	return c.flatToNested[node.ID], nil
}

// Path returns the labels from the region down to node.
func (c *ChecklistTree) Path(node *FlatNode) ([]string, error) {
	id, err := c.nested(node)
	if err != nil {
		return nil, err
	}
	return c.tree.Path(id), nil
}

// HasChild reports whether the row at index renders as an expandable node.
func (c *ChecklistTree) HasChild(_ int, node *FlatNode) bool {
	return node != nil && node.Expandable
}

// HasNoContent reports whether the row at index is an unlabelled placeholder
// waiting to be edited.
func (c *ChecklistTree) HasNoContent(_ int, node *FlatNode) bool {
	return node != nil && node.Label == ""
}

// Descendants returns the rows below node: every following row deeper than
// node, up to the next row at node's depth or shallower.
func (c *ChecklistTree) Descendants(node *FlatNode) []*FlatNode {
	i := c.IndexOf(node)
	if i < 0 {
		return nil
	}
	end := i + 1
	for end < len(c.rows) && c.rows[end].Depth > node.Depth {
		end++
	}
	return c.rows[i+1 : end]
}

// Parent returns the nearest row above node at a smaller depth, or nil for
// a region row.
func (c *ChecklistTree) Parent(node *FlatNode) *FlatNode {
	i := c.IndexOf(node)
	for j := i - 1; j >= 0; j-- {
		if c.rows[j].Depth < node.Depth {
			return c.rows[j]
		}
	}
	return nil
}

// IsSelected reports whether node is checked.
func (c *ChecklistTree) IsSelected(node *FlatNode) bool {
	if node == nil {
		return false
	}
	_, ok := c.selection[node.ID]
	return ok
}

// Selected returns the checked rows in row order.
func (c *ChecklistTree) Selected() []*FlatNode {
	var out []*FlatNode
	for _, row := range c.rows {
		if c.IsSelected(row) {
			out = append(out, row)
		}
	}
	return out
}

// SelectedCount returns the number of checked rows.
func (c *ChecklistTree) SelectedCount() int {
	return len(c.selection)
}

// ClearSelection unchecks every row.
func (c *ChecklistTree) ClearSelection() {
	c.selection = make(map[FlatID]struct{})
}

// DescendantsAllSelected reports whether every descendant of node is
// checked. A row without descendants is vacuously all selected.
func (c *ChecklistTree) DescendantsAllSelected(node *FlatNode) bool {
	for _, d := range c.Descendants(node) {
		if !c.IsSelected(d) {
			return false
		}
	}
	return true
}

// DescendantsPartiallySelected reports whether some, but not all,
// descendants of node are checked.
func (c *ChecklistTree) DescendantsPartiallySelected(node *FlatNode) bool {
	some := false
	for _, d := range c.Descendants(node) {
		if c.IsSelected(d) {
			some = true
			break
		}
	}
	return some && !c.DescendantsAllSelected(node)
}

// ToggleSelection flips node and forces its whole subtree to the new state.
func (c *ChecklistTree) ToggleSelection(node *FlatNode) {
	if c.IndexOf(node) < 0 {
		return
	}
	selected := !c.IsSelected(node)
	c.setSelected(node, selected)
	for _, d := range c.Descendants(node) {
		c.setSelected(d, selected)
	}
}

func (c *ChecklistTree) setSelected(node *FlatNode, selected bool) {
	if selected {
		c.selection[node.ID] = struct{}{}
	} else {
		delete(c.selection, node.ID)
	}
}

// Mark returns the checkbox state of node. A row with descendants reflects
// them (all, some or none checked); a row without reflects its own selection.
func (c *ChecklistTree) Mark(node *FlatNode) export.Mark {
	if len(c.Descendants(node)) == 0 {
		if c.IsSelected(node) {
			return export.Checked
		}
		return export.Unchecked
	}
	switch {
	case c.DescendantsAllSelected(node):
		return export.Checked
	case c.DescendantsPartiallySelected(node):
		return export.Partial
	default:
		return export.Unchecked
	}
}

// ExportRows snapshots every row for the exporters.
func (c *ChecklistTree) ExportRows() []export.Row {
	rows := make([]export.Row, 0, len(c.rows))
	for _, row := range c.rows {
		rows = append(rows, export.Row{
			Label:      row.Label,
			Depth:      row.Depth,
			Expandable: row.Expandable,
			Selected:   c.IsSelected(row),
			Mark:       c.Mark(row),
			Branch:     len(c.Descendants(row)) > 0,
		})
	}
	return rows
}

// AddNewPlace appends an empty placeholder place under node and returns its
// row. A row that already had children is expanded so the placeholder is
// visible; a leaf getting its first child is expanded only with
// ExpandNewParents.
func (c *ChecklistTree) AddNewPlace(node *FlatNode) (*FlatNode, error) {
	parent, err := c.nested(node)
	if err != nil {
		return nil, fmt.Errorf("add place: %w", err)
	}
	before, _ := c.tree.Node(parent)
	hadChildren := before.Kind == model.KindInternal

	child, err := c.store.InsertPlace(parent, "")
	if err != nil {
		return nil, fmt.Errorf("add place: %w", err)
	}

	// The store published synchronously, so node has been re-flattened.
	if hadChildren || c.opts.ExpandNewParents {
		c.Expand(node)
	}
	return c.nestedToFlat[child], nil
}

// SaveNode renames the place behind node.
func (c *ChecklistTree) SaveNode(node *FlatNode, value string) error {
	id, err := c.nested(node)
	if err != nil {
		return fmt.Errorf("save place: %w", err)
	}
	return c.store.UpdatePlace(id, value)
}

// IsExpanded reports whether node's children are shown.
func (c *ChecklistTree) IsExpanded(node *FlatNode) bool {
	return node != nil && c.expanded[node.ID]
}

// Expand shows node's children.
func (c *ChecklistTree) Expand(node *FlatNode) {
	if c.IndexOf(node) >= 0 {
		c.expanded[node.ID] = true
	}
}

// Collapse hides node's children.
func (c *ChecklistTree) Collapse(node *FlatNode) {
	if node != nil {
		delete(c.expanded, node.ID)
	}
}

// SetExpanded expands or collapses node.
func (c *ChecklistTree) SetExpanded(node *FlatNode, expanded bool) {
	if expanded {
		c.Expand(node)
	} else {
		c.Collapse(node)
	}
}

// ToggleExpand flips node's expansion.
func (c *ChecklistTree) ToggleExpand(node *FlatNode) {
	c.SetExpanded(node, !c.IsExpanded(node))
}

// ExpandAll expands every expandable row.
func (c *ChecklistTree) ExpandAll() {
	for _, row := range c.rows {
		if row.Expandable {
			c.expanded[row.ID] = true
		}
	}
}

// CollapseAll collapses every row.
func (c *ChecklistTree) CollapseAll() {
	c.expanded = make(map[FlatID]bool)
}

// VisibleRows returns the rows whose ancestors are all expanded, in order.
func (c *ChecklistTree) VisibleRows() []*FlatNode {
	visible := make([]*FlatNode, 0, len(c.rows))
	hideBelow := -1 // depth of the collapsed ancestor currently hiding rows
	for _, row := range c.rows {
		if hideBelow >= 0 {
			if row.Depth > hideBelow {
				continue
			}
			hideBelow = -1
		}
		visible = append(visible, row)
		if row.Expandable && !c.IsExpanded(row) {
			hideBelow = row.Depth
		}
	}
	return visible
}
