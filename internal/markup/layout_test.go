package markup

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/roach88/treelab/internal/tree"
)

func resolver(components map[string]tree.Forest) ComponentResolver {
	return func(id string) (tree.Forest, bool) {
		f, ok := components[id]
		return f, ok
	}
}

func TestRenderLayout_Golden(t *testing.T) {
	l := DefaultLayout()
	l.HeaderComponentIDs = []string{"cmp-btn"}
	l.ContentComponentIDs = []string{"cmp-btn", "cmp-missing"}

	got := RenderLayout(l, resolver(map[string]tree.Forest{
		"cmp-btn": F(N("b", tree.TagButton, "Continuar", C("rounded-lg", "bg-blue-600"))),
	}))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "layout_default", []byte(got))
}

func TestRenderLayout_HiddenSidebar(t *testing.T) {
	l := DefaultLayout()
	l.ShowSidebar = false

	got := RenderLayout(l, nil)

	assert.NotContains(t, got, "<aside")
	assert.Contains(t, got, "<h2 class=\"text-lg font-semibold\">Mi sitio web</h2>")
}

func TestRenderLayout_EscapesText(t *testing.T) {
	l := DefaultLayout()
	l.FooterText = "<b>"
	l.SidebarBody = "a&b\n\nc"

	got := RenderLayout(l, nil)

	assert.Contains(t, got, "&lt;b&gt;")
	assert.Contains(t, got, "<li>a&amp;b</li><li>c</li>")
}

func TestLayout_WithoutComponent(t *testing.T) {
	l := DefaultLayout()
	l.HeaderComponentIDs = []string{"a", "b"}
	l.FooterComponentIDs = []string{"b"}

	got := l.WithoutComponent("b")

	assert.Equal(t, []string{"a"}, got.HeaderComponentIDs)
	assert.Empty(t, got.FooterComponentIDs)
	assert.Equal(t, []string{"a", "b"}, l.HeaderComponentIDs, "receiver copy untouched")
}

func TestPreviewDocument(t *testing.T) {
	doc := PreviewDocument("<p>x</p>")
	assert.Contains(t, doc, "<!doctype html>")
	assert.Contains(t, doc, "<body><p>x</p></body>")
	assert.Contains(t, doc, "cdn.tailwindcss.com")
}
