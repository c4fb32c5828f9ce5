package model

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultDataset is the fixed region → country → city hierarchy.
// YAML is used instead of a Go map literal because mapping order matters:
// rows are flattened in document order. Note the trailing space in
// "South America ", which is part of the label.
const DefaultDataset = `
"South America ":
  Venezuela: [Caracas, Maracaibo]
  Brazil: [Sao Paulo, Rio de Janeiro]
  Argentina: [Buenos Aires, Cordoba]
North America:
  USA: [New York, Los Angeles]
  Mexico: [Mexico City, Guadalajara]
  Canada: [Toronto, Vancouver]
`

// DefaultTree builds a fresh tree from DefaultDataset.
func DefaultTree() *Tree {
	t, err := Build([]byte(DefaultDataset))
	if err != nil {
		// DefaultDataset is a constant; failing here is a programming error.
		panic(fmt.Sprintf("model: invalid default dataset: %v", err))
	}
	return t
}

// Build parses a nested YAML mapping into a Tree.
//
// For every mapping entry k: v
//   - v is null: a leaf labelled k
//   - v is a mapping or sequence: an internal node labelled k, children built from v
//   - v is a scalar: a leaf labelled v (the key is dropped)
//
// Sequence items follow the same rules with the item index standing in for
// the key, so a list of cities becomes a list of leaves.
func Build(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	t := NewTree()
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return t, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode && root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parse dataset: top level must be a mapping or sequence, got %s", kindName(root))
	}

	add := func(label string, kind NodeKind) NodeID {
		return t.AddRoot(label, kind)
	}
	if err := buildLevel(t, root, add); err != nil {
		return nil, err
	}
	return t, nil
}

// buildLevel walks one mapping or sequence, creating a node per entry through add.
func buildLevel(t *Tree, value *yaml.Node, add func(label string, kind NodeKind) NodeID) error {
	switch value.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			if err := buildEntry(t, value.Content[i].Value, value.Content[i+1], add); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range value.Content {
			if err := buildEntry(t, strconv.Itoa(i), item, add); err != nil {
				return err
			}
		}
	case yaml.AliasNode:
		return buildLevel(t, value.Alias, add)
	}
	return nil
}

func buildEntry(t *Tree, key string, value *yaml.Node, add func(label string, kind NodeKind) NodeID) error {
	if value.Kind == yaml.AliasNode {
		value = value.Alias
	}

	switch {
	case isNull(value):
		add(key, KindLeaf)
	case value.Kind == yaml.MappingNode || value.Kind == yaml.SequenceNode:
		id := add(key, KindInternal)
		child := func(label string, kind NodeKind) NodeID {
			// id was just allocated, so AddChild cannot fail
			cid, _ := t.AddChild(id, label, kind)
			return cid
		}
		if err := buildLevel(t, value, child); err != nil {
			return fmt.Errorf("build %q: %w", key, err)
		}
	case value.Kind == yaml.ScalarNode:
		add(value.Value, KindLeaf)
	default:
		return fmt.Errorf("unsupported value for %q: %s", key, kindName(value))
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
