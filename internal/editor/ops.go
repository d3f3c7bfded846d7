package editor

import (
	"fmt"

	"github.com/roach88/treelab/internal/tree"
)

// Op names an edit operation.
type Op string

const (
	OpAddChild    Op = "add_child"
	OpAddRoot     Op = "add_root"
	OpUpdate      Op = "update"
	OpRemove      Op = "remove"
	OpAddClass    Op = "add_class"
	OpRemoveClass Op = "remove_class"
)

// Edit is one serializable edit, as read from fixture files or built from
// command-line flags.
type Edit struct {
	Op Op `yaml:"op" json:"op"`

	// ID is the target node, or the parent for add_child.
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	// Node is inserted by add_child and add_root. When nil, a node is
	// created from Tag and Content.
	Node *tree.Node `yaml:"node,omitempty" json:"node,omitempty"`

	// Tag, Content and Classes carry the update patch, or the fields of a
	// created node.
	Tag     tree.Tag `yaml:"tag,omitempty" json:"tag,omitempty"`
	Content *string  `yaml:"content,omitempty" json:"content,omitempty"`
	Classes []string `yaml:"classes,omitempty" json:"classes,omitempty"`

	// Class is the token for add_class and remove_class.
	Class string `yaml:"class,omitempty" json:"class,omitempty"`
}

// Apply performs a single edit. Missing target ids are no-ops, matching the
// underlying operations; malformed edits return an error.
func (e *Editor) Apply(f tree.Forest, ed Edit) (tree.Forest, error) {
	switch ed.Op {
	case OpAddChild:
		if ed.ID == "" {
			return f, fmt.Errorf("%s: parent id is required", ed.Op)
		}
		return AddChildNode(f, ed.ID, e.nodeFor(ed)), nil
	case OpAddRoot:
		return AppendRoot(f, e.nodeFor(ed)), nil
	case OpUpdate:
		if ed.ID == "" {
			return f, fmt.Errorf("%s: id is required", ed.Op)
		}
		var p Patch
		if ed.Tag != "" {
			tag := ed.Tag
			p.Tag = &tag
		}
		p.Content = ed.Content
		p.Classes = ed.Classes
		return ApplyPatch(f, ed.ID, p), nil
	case OpRemove:
		if ed.ID == "" {
			return f, fmt.Errorf("%s: id is required", ed.Op)
		}
		return RemoveNode(f, ed.ID), nil
	case OpAddClass, OpRemoveClass:
		if ed.ID == "" || ed.Class == "" {
			return f, fmt.Errorf("%s: id and class are required", ed.Op)
		}
		if ed.Op == OpAddClass {
			return AddClass(f, ed.ID, ed.Class), nil
		}
		return RemoveClass(f, ed.ID, ed.Class), nil
	default:
		return f, fmt.Errorf("unknown edit op %q", ed.Op)
	}
}

// ApplyAll performs edits in order and stops at the first malformed one.
func (e *Editor) ApplyAll(f tree.Forest, edits []Edit) (tree.Forest, error) {
	for i, ed := range edits {
		next, err := e.Apply(f, ed)
		if err != nil {
			return f, fmt.Errorf("edit %d: %w", i, err)
		}
		f = next
	}
	return f, nil
}

func (e *Editor) nodeFor(ed Edit) *tree.Node {
	if ed.Node != nil {
		return tree.Normalize(tree.Forest{ed.Node})[0]
	}
	content := DefaultContent
	if ed.Content != nil {
		content = *ed.Content
	}
	n := e.CreateNode(ed.Tag, content)
	if len(ed.Classes) > 0 {
		n.Classes = append(n.Classes, ed.Classes...)
	}
	return n
}
