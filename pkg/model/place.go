package model

import (
	"errors"
	"fmt"
)

// NodeID addresses a node inside a Tree arena. IDs are stable for the
// lifetime of a Tree; they are only reused after the tree is rebuilt.
type NodeID int

// NoNode is the zero-value sentinel for "no node".
const NoNode NodeID = -1

// NodeKind distinguishes leaves from internal nodes explicitly, instead of
// inferring it from whether a child list happens to exist.
type NodeKind int

const (
	KindLeaf     NodeKind = iota // A place with nothing below it
	KindInternal                 // A place that owns a (possibly empty) child list
)

func (k NodeKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is a region, country or city.
type Node struct {
	Label    string
	Kind     NodeKind
	Children []NodeID // Only meaningful for KindInternal
}

// IsLeaf reports whether the node has never been given a child list.
func (n Node) IsLeaf() bool {
	return n.Kind == KindLeaf
}

// Tree is an arena of nodes plus the ordered list of roots.
// Nodes are appended and never removed, so the structure is a strict tree.
type Tree struct {
	nodes []Node
	Roots []NodeID
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) (Node, error) {
	if !t.Has(id) {
		return Node{}, &NotFoundError{Kind: "node", ID: int(id)}
	}
	return t.nodes[id], nil
}

// Has reports whether id addresses a node in this tree.
func (t *Tree) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Label returns the label of id, or "" for an unknown id.
func (t *Tree) Label(id NodeID) string {
	if !t.Has(id) {
		return ""
	}
	return t.nodes[id].Label
}

// Children returns the child ids of id. The returned slice is shared.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Has(id) {
		return nil
	}
	return t.nodes[id].Children
}

// AddRoot appends a new top-level node.
func (t *Tree) AddRoot(label string, kind NodeKind) NodeID {
	id := t.alloc(label, kind)
	t.Roots = append(t.Roots, id)
	return id
}

// AddChild appends a new node under parent. A leaf parent is converted to an
// internal node first.
func (t *Tree) AddChild(parent NodeID, label string, kind NodeKind) (NodeID, error) {
	if !t.Has(parent) {
		return NoNode, &NotFoundError{Kind: "node", ID: int(parent)}
	}
	id := t.alloc(label, kind)
	p := &t.nodes[parent]
	p.Kind = KindInternal
	p.Children = append(p.Children, id)
	return id, nil
}

// SetLabel overwrites the label of id in place.
func (t *Tree) SetLabel(id NodeID, label string) error {
	if !t.Has(id) {
		return &NotFoundError{Kind: "node", ID: int(id)}
	}
	t.nodes[id].Label = label
	return nil
}

// Walk visits every node in pre-order: a node before its children, children
// left to right. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(id NodeID, depth int) bool) {
	var visit func(id NodeID, depth int) bool
	visit = func(id NodeID, depth int) bool {
		if !fn(id, depth) {
			return false
		}
		for _, child := range t.nodes[id].Children {
			if !visit(child, depth+1) {
				return false
			}
		}
		return true
	}
	for _, root := range t.Roots {
		if !visit(root, 0) {
			return
		}
	}
}

// Path returns the labels from the root down to id, or nil if id is unknown.
func (t *Tree) Path(id NodeID) []string {
	var stack []string
	var visit func(n NodeID) bool
	visit = func(n NodeID) bool {
		stack = append(stack, t.nodes[n].Label)
		if n == id {
			return true
		}
		for _, child := range t.nodes[n].Children {
			if visit(child) {
				return true
			}
		}
		stack = stack[:len(stack)-1]
		return false
	}
	for _, root := range t.Roots {
		if visit(root) {
			return stack
		}
	}
	return nil
}

func (t *Tree) alloc(label string, kind NodeKind) NodeID {
	t.nodes = append(t.nodes, Node{Label: label, Kind: kind})
	return NodeID(len(t.nodes) - 1)
}

// ErrNotFound is matched by every NotFoundError via errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a lookup of a node or row that no longer exists,
// e.g. a stale row left over from an earlier flatten pass.
type NotFoundError struct {
	Kind string // "node" or "row"
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) true for any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
