package tree

// Walk flattens f in preorder: each root, then its subtree, then the next root.
// The result is materialized eagerly and never nil.
func Walk(f Forest) []*Node {
	out := make([]*Node, 0, len(f))
	return walk(f, out)
}

func walk(f Forest, out []*Node) []*Node {
	for _, n := range f {
		out = append(out, n)
		out = walk(n.Children, out)
	}
	return out
}
