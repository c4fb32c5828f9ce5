// Package store owns the canonical place tree and notifies listeners after
// every mutation.
package store

import (
	"fmt"

	"github.com/vanderheijden86/placetree/pkg/model"
)

// EventKind says which mutation produced an Event.
type EventKind int

const (
	EventInitialized EventKind = iota // Tree (re)built from the dataset
	EventInserted                     // A leaf was appended under Parent
	EventRenamed                      // Node's label was overwritten
)

func (k EventKind) String() string {
	switch k {
	case EventInitialized:
		return "initialized"
	case EventInserted:
		return "inserted"
	case EventRenamed:
		return "renamed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to listeners after a mutation.
//
// Tree is the store's live tree, not a copy. Listeners must treat it as
// read-only.
type Event struct {
	Kind   EventKind
	Node   model.NodeID // Inserted or renamed node; NoNode for EventInitialized
	Parent model.NodeID // Parent of an inserted node; NoNode otherwise
	Tree   *model.Tree
}

// Listener is called synchronously on the goroutine that mutated the store.
type Listener func(Event)

// Store holds the place tree. It is not safe for concurrent use: all calls
// are expected to come from the UI goroutine.
type Store struct {
	tree      *model.Tree
	dataset   []byte
	listeners []*subscription
}

type subscription struct {
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithDataset replaces the built-in dataset. Used by tests.
func WithDataset(yamlData string) Option {
	return func(s *Store) {
		s.dataset = []byte(yamlData)
	}
}

// New creates a store and builds the tree from the dataset.
func New(opts ...Option) (*Store, error) {
	s := &Store{dataset: []byte(model.DefaultDataset)}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Initialize rebuilds the tree from the dataset and publishes it.
// Node ids of the previous tree may be reused for different places.
func (s *Store) Initialize() error {
	tree, err := model.Build(s.dataset)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	s.tree = tree
	s.publish(Event{Kind: EventInitialized, Node: model.NoNode, Parent: model.NoNode})
	return nil
}

// Data returns the live tree.
func (s *Store) Data() *model.Tree {
	return s.tree
}

// InsertPlace appends a new leaf labelled label under parent, converting a
// leaf parent into an internal node. An empty label is allowed and marks a
// row that is about to be edited.
func (s *Store) InsertPlace(parent model.NodeID, label string) (model.NodeID, error) {
	id, err := s.tree.AddChild(parent, label, model.KindLeaf)
	if err != nil {
		return model.NoNode, fmt.Errorf("insert place: %w", err)
	}
	s.publish(Event{Kind: EventInserted, Node: id, Parent: parent})
	return id, nil
}

// UpdatePlace overwrites the label of node in place.
func (s *Store) UpdatePlace(node model.NodeID, label string) error {
	if err := s.tree.SetLabel(node, label); err != nil {
		return fmt.Errorf("update place: %w", err)
	}
	s.publish(Event{Kind: EventRenamed, Node: node, Parent: model.NoNode})
	return nil
}

// Subscribe registers fn and immediately delivers the current tree to it as
// an EventInitialized. The returned func removes the listener; calling it
// more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	s.listeners = append(s.listeners, sub)
	fn(Event{Kind: EventInitialized, Node: model.NoNode, Parent: model.NoNode, Tree: s.tree})

	return func() {
		for i, l := range s.listeners {
			if l == sub {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(ev Event) {
	ev.Tree = s.tree
	// Copy so a listener that unsubscribes does not shift the iteration.
	listeners := append([]*subscription(nil), s.listeners...)
	for _, l := range listeners {
		l.fn(ev)
	}
}
