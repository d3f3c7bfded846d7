package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treelab/internal/testutil"
	"github.com/roach88/treelab/internal/tree"
)

func TestCreateNode(t *testing.T) {
	e := NewEditor(NewFixedGenerator("n1", "n2"))

	n := e.CreateNode(tree.TagP, "Hola")
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, tree.TagP, n.Tag)
	assert.Equal(t, "Hola", n.Content)
	assert.NotNil(t, n.Classes)
	assert.Empty(t, n.Classes)
	assert.NotNil(t, n.Children)
	assert.Empty(t, n.Children)

	d := e.CreateDefaultNode()
	assert.Equal(t, "n2", d.ID)
	assert.Equal(t, DefaultTag, d.Tag)
	assert.Equal(t, DefaultContent, d.Content)
}

func TestCreateNode_EmptyTagDefaults(t *testing.T) {
	n := New().CreateNode("", "x")
	assert.Equal(t, tree.TagDiv, n.Tag)
}

func TestFindNodeByID(t *testing.T) {
	f := testutil.Card()

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"root", "card", "card"},
		{"nested", "price", "price"},
		{"second root", "footer", "footer"},
		{"missing", "missing", ""},
		{"empty id", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindNodeByID(f, tt.id)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}

	assert.Nil(t, FindNodeByID(nil, "card"))
}

func TestUpdateNode_StructuralSharing(t *testing.T) {
	f := testutil.Card()
	card, title, body, buy, footer := f[0], f[0].Children[0], f[0].Children[1], f[0].Children[1].Children[1], f[1]

	next := UpdateNode(f, "price", func(n *tree.Node) *tree.Node {
		c := *n
		c.Content = "$59.00"
		return &c
	})

	require.Len(t, next, 2)
	// path rebuilt
	assert.NotSame(t, card, next[0])
	assert.NotSame(t, body, next[0].Children[1])
	assert.Equal(t, "$59.00", next[0].Children[1].Children[0].Content)
	// siblings shared
	assert.Same(t, title, next[0].Children[0])
	assert.Same(t, buy, next[0].Children[1].Children[1])
	assert.Same(t, footer, next[1])
	// input untouched
	assert.Equal(t, "$49.00", f[0].Children[1].Children[0].Content)
}

func TestUpdateNode_MissReturnsInput(t *testing.T) {
	f := testutil.Card()

	next := UpdateNode(f, "missing", func(n *tree.Node) *tree.Node {
		t.Fatal("updater must not run")
		return n
	})

	require.Len(t, next, len(f))
	assert.Same(t, &f[0], &next[0])
	assert.True(t, tree.Equal(f, next))
}

func TestUpdateNode_ReceivesPreviousValue(t *testing.T) {
	f := testutil.Card()
	var seen *tree.Node

	UpdateNode(f, "buy", func(n *tree.Node) *tree.Node {
		seen = n
		return n
	})

	assert.Same(t, f[0].Children[1].Children[1], seen)
}

func TestAddChildNode(t *testing.T) {
	root := testutil.N("root", tree.TagDiv, "", nil)
	e := NewEditor(NewFixedGenerator("child"))
	child := e.CreateNode(tree.TagP, "Hola")

	next := AddChildNode(tree.Forest{root}, "root", child)

	require.Len(t, next[0].Children, 1)
	assert.Equal(t, "Hola", next[0].Children[0].Content)
	assert.Empty(t, root.Children, "input must not change")
}

func TestAddChildNode_AppendsAtEnd(t *testing.T) {
	f := testutil.Card()
	child := testutil.N("new", tree.TagSpan, "x", nil)

	next := AddChildNode(f, "body", child)

	body := next[0].Children[1]
	require.Len(t, body.Children, 3)
	assert.Same(t, child, body.Children[2])
	assert.Len(t, f[0].Children[1].Children, 2)
}

func TestAddChildNode_MissingParent(t *testing.T) {
	f := testutil.Card()
	next := AddChildNode(f, "missing", testutil.N("x", tree.TagP, "", nil))
	assert.True(t, tree.Equal(f, next))
	assert.Same(t, &f[0], &next[0])
}

func TestRemoveNode_Recursive(t *testing.T) {
	f := testutil.Card()

	next := RemoveNode(f, "body")

	ids := tree.IDs(next)
	assert.Equal(t, []string{"card", "title", "footer"}, ids)
	assert.NotContains(t, ids, "price")
	assert.NotContains(t, ids, "buy")
	// input untouched
	assert.Len(t, f[0].Children, 2)
}

func TestRemoveNode_Root(t *testing.T) {
	next := RemoveNode(testutil.Card(), "card")
	assert.Equal(t, []string{"footer"}, tree.IDs(next))
}

func TestRemoveNode_MissRebuilds(t *testing.T) {
	f := testutil.Card()

	next := RemoveNode(f, "missing")

	assert.True(t, tree.Equal(f, next))
	assert.NotSame(t, f[0], next[0])
}

func TestRemoveNode_Empty(t *testing.T) {
	next := RemoveNode(nil, "x")
	assert.NotNil(t, next)
	assert.Empty(t, next)
}

func TestAppendRoot(t *testing.T) {
	f := testutil.Card()
	n := testutil.N("extra", tree.TagSection, "", nil)

	next := AppendRoot(f, n)

	assert.Len(t, next, 3)
	assert.Same(t, n, next[2])
	assert.Len(t, f, 2)
}

// Ids stay pairwise distinct across any sequence of editor operations that
// starts from an empty forest.
func TestUniqueness_AcrossEdits(t *testing.T) {
	e := New()
	var f tree.Forest

	f = AppendRoot(f, e.CreateNode(tree.TagDiv, ""))
	rootID := f[0].ID
	for i := 0; i < 20; i++ {
		f = AddChildNode(f, rootID, e.CreateNode(tree.TagP, "text"))
	}
	second := f[0].Children[3].ID
	for i := 0; i < 5; i++ {
		f = AddChildNode(f, second, e.CreateNode(tree.TagSpan, "x"))
	}
	f = RemoveNode(f, f[0].Children[0].ID)
	f = UpdateNode(f, second, func(n *tree.Node) *tree.Node {
		c := *n
		c.Content = "edited"
		return &c
	})
	f = AppendRoot(f, e.CreateDefaultNode())

	ids := tree.IDs(f)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		assert.False(t, seen[id], "id %s appears twice", id)
		seen[id] = true
	}
	assert.Len(t, ids, 1+19+5+1)
}
