package editor

import (
	"slices"

	"github.com/roach88/treelab/internal/tree"
)

// Defaults for CreateDefaultNode.
const (
	DefaultTag     = tree.TagDiv
	DefaultContent = "Nuevo elemento"
)

// Editor creates nodes. It owns the id generator so that no package-level
// state is needed for id uniqueness.
type Editor struct {
	ids IDGenerator
}

// New returns an editor backed by a SequenceGenerator with prefix "node".
func New() *Editor {
	return NewEditor(NewSequenceGenerator("node"))
}

// NewEditor returns an editor that takes ids from gen.
func NewEditor(gen IDGenerator) *Editor {
	return &Editor{ids: gen}
}

// CreateNode returns a fresh leaf with a new id and no classes.
// An empty tag is replaced by DefaultTag.
func (e *Editor) CreateNode(tag tree.Tag, content string) *tree.Node {
	if tag == "" {
		tag = DefaultTag
	}
	return &tree.Node{
		ID:       e.ids.Generate(),
		Tag:      tag,
		Content:  content,
		Classes:  []string{},
		Children: []*tree.Node{},
	}
}

// CreateDefaultNode returns CreateNode(DefaultTag, DefaultContent).
func (e *Editor) CreateDefaultNode() *tree.Node {
	return e.CreateNode(DefaultTag, DefaultContent)
}

// FindNodeByID returns the first node with id in preorder, or nil when id is
// empty or absent.
func FindNodeByID(f tree.Forest, id string) *tree.Node {
	if id == "" {
		return nil
	}
	for _, n := range f {
		if n.ID == id {
			return n
		}
		if found := FindNodeByID(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// UpdateNode replaces the node with id by updater(node).
//
// The path from the match to its root is rebuilt; sibling subtrees are returned
// unchanged (same pointers). When id is absent the input forest itself is
// returned. updater receives the previous node and must return a complete
// replacement; it must not modify its argument.
func UpdateNode(f tree.Forest, id string, updater func(*tree.Node) *tree.Node) tree.Forest {
	next, changed := update(f, id, updater)
	if !changed {
		return f
	}
	return next
}

func update(f tree.Forest, id string, updater func(*tree.Node) *tree.Node) (tree.Forest, bool) {
	for i, n := range f {
		var replacement *tree.Node
		if n.ID == id {
			replacement = updater(n)
		} else if len(n.Children) > 0 {
			children, changed := update(n.Children, id, updater)
			if !changed {
				continue
			}
			c := *n
			c.Children = []*tree.Node(children)
			replacement = &c
		} else {
			continue
		}
		out := slices.Clone(f)
		out[i] = replacement
		return out, true
	}
	return f, false
}

// AddChildNode appends child to the children of the node with parentID.
// The forest is returned unchanged when parentID is absent. child's id is not
// checked against the rest of the forest.
func AddChildNode(f tree.Forest, parentID string, child *tree.Node) tree.Forest {
	return UpdateNode(f, parentID, func(n *tree.Node) *tree.Node {
		c := *n
		c.Children = make([]*tree.Node, 0, len(n.Children)+1)
		c.Children = append(c.Children, n.Children...)
		c.Children = append(c.Children, child)
		return &c
	})
}

// RemoveNode drops every node with id, at any depth, together with its subtree.
// Descendants are pruned, not reparented. Unlike UpdateNode every level is
// rebuilt even when nothing matches, so the result is value-equal to the input
// but never the same slice.
func RemoveNode(f tree.Forest, id string) tree.Forest {
	out := make(tree.Forest, 0, len(f))
	for _, n := range f {
		if n.ID == id {
			continue
		}
		c := *n
		c.Children = []*tree.Node(RemoveNode(n.Children, id))
		out = append(out, &c)
	}
	return out
}

// AppendRoot adds node as the last root.
func AppendRoot(f tree.Forest, node *tree.Node) tree.Forest {
	out := make(tree.Forest, 0, len(f)+1)
	out = append(out, f...)
	return append(out, node)
}
