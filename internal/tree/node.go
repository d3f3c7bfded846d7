package tree

import "slices"

// Tag names a markup element kind, e.g. "div" or "button".
type Tag string

// Tags in the default catalog.
const (
	TagDiv      Tag = "div"
	TagP        Tag = "p"
	TagSpan     Tag = "span"
	TagH1       Tag = "h1"
	TagH2       Tag = "h2"
	TagH3       Tag = "h3"
	TagA        Tag = "a"
	TagButton   Tag = "button"
	TagImg      Tag = "img"
	TagInput    Tag = "input"
	TagTextArea Tag = "textarea"
	TagUl       Tag = "ul"
	TagLi       Tag = "li"
	TagSection  Tag = "section"
	TagHeader   Tag = "header"
	TagFooter   Tag = "footer"
	TagNav      Tag = "nav"
	TagArticle  Tag = "article"
)

// Node is a single element in the document tree.
type Node struct {
	ID       string   `json:"id" yaml:"id"`
	Tag      Tag      `json:"tag" yaml:"tag"`
	Content  string   `json:"content" yaml:"content"`
	Classes  []string `json:"classes" yaml:"classes"`
	Children []*Node  `json:"children" yaml:"children"`
}

// Forest is an ordered sequence of root nodes.
type Forest []*Node

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// HasClass reports whether n carries the exact class token.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// Clone returns a shallow copy of n with its own Classes and Children slices.
// Child nodes are shared, not copied.
func (n *Node) Clone() *Node {
	c := *n
	c.Classes = slices.Clone(n.Classes)
	if c.Classes == nil {
		c.Classes = []string{}
	}
	c.Children = slices.Clone(n.Children)
	if c.Children == nil {
		c.Children = []*Node{}
	}
	return &c
}

// Normalize returns a deep copy of f in which every nil Classes or Children
// slice is replaced by an empty one. Nil nodes are dropped.
func Normalize(f Forest) Forest {
	out := make(Forest, 0, len(f))
	for _, n := range f {
		if n == nil {
			continue
		}
		c := *n
		if c.Classes == nil {
			c.Classes = []string{}
		} else {
			c.Classes = slices.Clone(c.Classes)
		}
		c.Children = []*Node(Normalize(n.Children))
		out = append(out, &c)
	}
	return out
}

// Equal reports whether two forests have the same shape and values.
// Nil and empty collections compare equal.
func Equal(a, b Forest) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func nodeEqual(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.ID != b.ID || a.Tag != b.Tag || a.Content != b.Content {
		return false
	}
	if !slices.Equal(a.Classes, b.Classes) {
		return false
	}
	return Equal(a.Children, b.Children)
}

// Depth returns the nesting level of the node with id (roots are 0).
func Depth(f Forest, id string) (int, bool) {
	return depth(f, id, 0)
}

func depth(f Forest, id string, level int) (int, bool) {
	for _, n := range f {
		if n.ID == id {
			return level, true
		}
		if d, ok := depth(n.Children, id, level+1); ok {
			return d, true
		}
	}
	return 0, false
}

// IDs returns the ids of every node in preorder.
func IDs(f Forest) []string {
	nodes := Walk(f)
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
