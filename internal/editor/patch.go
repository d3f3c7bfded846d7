package editor

import (
	"fmt"
	"slices"

	"github.com/roach88/treelab/internal/tree"
)

// Patch is a partial node update. Nil fields are left alone.
// Merging happens here, on top of UpdateNode, which only knows full
// replacements.
type Patch struct {
	Tag     *tree.Tag
	Content *string
	Classes []string
}

// ApplyPatch merges p into the node with id.
func ApplyPatch(f tree.Forest, id string, p Patch) tree.Forest {
	return UpdateNode(f, id, func(n *tree.Node) *tree.Node {
		c := *n
		if p.Tag != nil {
			c.Tag = *p.Tag
		}
		if p.Content != nil {
			c.Content = *p.Content
		}
		if p.Classes != nil {
			c.Classes = slices.Clone(p.Classes)
		}
		return &c
	})
}

// AddClass appends class to the node with id unless it is blank or already
// present. The forest is returned unchanged in both of those cases.
func AddClass(f tree.Forest, id, class string) tree.Forest {
	n := FindNodeByID(f, id)
	if n == nil || class == "" || n.HasClass(class) {
		return f
	}
	classes := make([]string, 0, len(n.Classes)+1)
	classes = append(classes, n.Classes...)
	classes = append(classes, class)
	return ApplyPatch(f, id, Patch{Classes: classes})
}

// UniqueClasses returns classes without empty tokens and without repeats,
// keeping the first occurrence of each. The result is never nil.
func UniqueClasses(classes []string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// RemoveClass drops every occurrence of class from the node with id.
func RemoveClass(f tree.Forest, id, class string) tree.Forest {
	n := FindNodeByID(f, id)
	if n == nil || !n.HasClass(class) {
		return f
	}
	classes := make([]string, 0, len(n.Classes))
	for _, c := range n.Classes {
		if c != class {
			classes = append(classes, c)
		}
	}
	return ApplyPatch(f, id, Patch{Classes: classes})
}

// CloneWithPrefix deep-copies f, rewriting every id so that copies of the same
// template never collide. Root i gets "<prefix>-<i>-<id>"; the children of a
// node cloned under p get "<p>-<j>-<id>".
func CloneWithPrefix(f tree.Forest, prefix string) tree.Forest {
	out := make(tree.Forest, len(f))
	for i, n := range f {
		out[i] = cloneNodeWithPrefix(n, fmt.Sprintf("%s-%d", prefix, i))
	}
	return out
}

func cloneNodeWithPrefix(n *tree.Node, prefix string) *tree.Node {
	c := &tree.Node{
		ID:       prefix + "-" + n.ID,
		Tag:      n.Tag,
		Content:  n.Content,
		Classes:  slices.Clone(n.Classes),
		Children: make([]*tree.Node, len(n.Children)),
	}
	if c.Classes == nil {
		c.Classes = []string{}
	}
	for j, child := range n.Children {
		c.Children[j] = cloneNodeWithPrefix(child, fmt.Sprintf("%s-%d", prefix, j))
	}
	return c
}
