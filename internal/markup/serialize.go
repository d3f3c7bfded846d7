package markup

import (
	"strings"

	"github.com/roach88/treelab/internal/tree"
)

// Kind is the rendering variant of a tag.
type Kind int

const (
	// KindElement renders <tag>content children</tag>.
	KindElement Kind = iota
	// KindImage renders a self-closing <img> with alt and placeholder src.
	KindImage
	// KindInput renders a self-closing text <input> with a placeholder.
	KindInput
	// KindTextArea renders an empty <textarea> with a placeholder.
	KindTextArea
	// KindLink renders <a href="#">content children</a>.
	KindLink
)

// PlaceholderImageURL is the src prefix for image nodes; the URL-encoded alt
// text is appended.
const PlaceholderImageURL = "https://placehold.co/600x360/e2e8f0/334155?text="

// DefaultAlt is used when an image node has no content.
const DefaultAlt = "Imagen"

// KindOf returns the rendering variant for tag.
func KindOf(tag tree.Tag) Kind {
	switch tag {
	case tree.TagImg:
		return KindImage
	case tree.TagInput:
		return KindInput
	case tree.TagTextArea:
		return KindTextArea
	case tree.TagA:
		return KindLink
	default:
		return KindElement
	}
}

// Serialize renders f, one root per line.
func Serialize(f tree.Forest) string {
	var b strings.Builder
	for i, n := range f {
		if i > 0 {
			b.WriteByte('\n')
		}
		render(&b, n)
	}
	return b.String()
}

// SerializeNode renders a single node and its subtree.
func SerializeNode(n *tree.Node) string {
	var b strings.Builder
	render(&b, n)
	return b.String()
}

func render(b *strings.Builder, n *tree.Node) {
	attrs := classAttr(n.Classes)
	content := Escape(n.Content)

	switch KindOf(n.Tag) {
	case KindImage:
		alt := content
		if alt == "" {
			alt = DefaultAlt
		}
		b.WriteString("<img" + attrs + ` alt="` + alt + `" src="` + PlaceholderImageURL + EncodeURIComponent(alt) + `" />`)
	case KindInput:
		b.WriteString("<input" + attrs + ` type="text" placeholder="` + content + `" />`)
	case KindTextArea:
		b.WriteString("<textarea" + attrs + ` placeholder="` + content + `"></textarea>`)
	case KindLink:
		b.WriteString("<a" + attrs + ` href="#">` + content)
		renderChildren(b, n)
		b.WriteString("</a>")
	default:
		tag := string(n.Tag)
		b.WriteString("<" + tag + attrs + ">" + content)
		renderChildren(b, n)
		b.WriteString("</" + tag + ">")
	}
}

func renderChildren(b *strings.Builder, n *tree.Node) {
	for _, c := range n.Children {
		render(b, c)
	}
}

// classAttr returns ` class="..."`, or "" when there are no classes.
func classAttr(classes []string) string {
	if len(classes) == 0 {
		return ""
	}
	return ` class="` + Escape(strings.Join(classes, " ")) + `"`
}
