// Package testutil holds helpers shared by treelab tests.
package testutil

import "github.com/roach88/treelab/internal/tree"

// N builds a node with non-nil collections.
func N(id string, tag tree.Tag, content string, classes []string, children ...*tree.Node) *tree.Node {
	if classes == nil {
		classes = []string{}
	}
	if children == nil {
		children = []*tree.Node{}
	}
	return &tree.Node{ID: id, Tag: tag, Content: content, Classes: classes, Children: children}
}

// C is shorthand for a class list.
func C(classes ...string) []string {
	if classes == nil {
		return []string{}
	}
	return classes
}

// F builds a forest.
func F(roots ...*tree.Node) tree.Forest {
	if roots == nil {
		return tree.Forest{}
	}
	return tree.Forest(roots)
}

// Card returns a small two-level forest used across packages:
//
//	card (article)
//	  title (h3)
//	  body (div)
//	    price (p)
//	    buy (button)
//	footer (footer)
func Card() tree.Forest {
	return F(
		N("card", tree.TagArticle, "", C("rounded-xl", "border", "shadow-sm"),
			N("title", tree.TagH3, "Reloj", C("text-lg", "font-semibold")),
			N("body", tree.TagDiv, "", C("flex", "gap-2"),
				N("price", tree.TagP, "$49.00", C("text-sm")),
				N("buy", tree.TagButton, "Comprar", C("bg-blue-600", "text-white")),
			),
		),
		N("footer", tree.TagFooter, "fin", nil),
	)
}
