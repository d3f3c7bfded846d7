package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/treelab/internal/testutil"
	"github.com/roach88/treelab/internal/tree"
)

func strPtr(s string) *string { return &s }

func TestApply(t *testing.T) {
	e := NewEditor(NewFixedGenerator("new-1"))
	card := testutil.Card()

	t.Run("add child creates default node", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpAddChild, ID: "body"})
		require.NoError(t, err)
		body := FindNodeByID(got, "body")
		require.Len(t, body.Children, 3)
		added := body.Children[2]
		assert.Equal(t, "new-1", added.ID)
		assert.Equal(t, DefaultTag, added.Tag)
		assert.Equal(t, DefaultContent, added.Content)
	})

	t.Run("add root with explicit node", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpAddRoot, Node: &tree.Node{ID: "x", Tag: tree.TagNav}})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "x", got[2].ID)
		assert.NotNil(t, got[2].Classes)
	})

	t.Run("update merges set fields", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpUpdate, ID: "price", Content: strPtr("$59.00")})
		require.NoError(t, err)
		n := FindNodeByID(got, "price")
		assert.Equal(t, "$59.00", n.Content)
		assert.Equal(t, tree.TagP, n.Tag)
		assert.Equal(t, []string{"text-sm"}, n.Classes)
	})

	t.Run("update tag and classes", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpUpdate, ID: "title", Tag: tree.TagH2, Classes: []string{"text-xl"}})
		require.NoError(t, err)
		n := FindNodeByID(got, "title")
		assert.Equal(t, tree.TagH2, n.Tag)
		assert.Equal(t, []string{"text-xl"}, n.Classes)
		assert.Equal(t, "Reloj", n.Content)
	})

	t.Run("remove", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpRemove, ID: "body"})
		require.NoError(t, err)
		assert.Nil(t, FindNodeByID(got, "buy"))
	})

	t.Run("classes", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpAddClass, ID: "buy", Class: "rounded-lg"})
		require.NoError(t, err)
		got, err = e.Apply(got, Edit{Op: OpRemoveClass, ID: "buy", Class: "text-white"})
		require.NoError(t, err)
		assert.Equal(t, []string{"bg-blue-600", "rounded-lg"}, FindNodeByID(got, "buy").Classes)
	})

	t.Run("missing target is a no-op", func(t *testing.T) {
		got, err := e.Apply(card, Edit{Op: OpAddClass, ID: "ghost", Class: "x"})
		require.NoError(t, err)
		assert.True(t, tree.Equal(card, got))
	})

	assert.True(t, tree.Equal(testutil.Card(), card), "input forest unchanged")
}

func TestApply_Malformed(t *testing.T) {
	e := NewEditor(NewFixedGenerator())
	tests := []struct {
		name string
		edit Edit
		want string
	}{
		{"unknown op", Edit{Op: "rename"}, `unknown edit op "rename"`},
		{"add child without parent", Edit{Op: OpAddChild}, "parent id is required"},
		{"update without id", Edit{Op: OpUpdate}, "id is required"},
		{"remove without id", Edit{Op: OpRemove}, "id is required"},
		{"add class without class", Edit{Op: OpAddClass, ID: "a"}, "id and class are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Apply(testutil.Card(), tt.edit)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestApplyAll(t *testing.T) {
	src := `
- {op: add_root, tag: button, content: Continuar}
- {op: add_class, id: n-1, class: bg-blue-600}
- {op: add_class, id: n-1, class: text-white}
`
	var edits []Edit
	require.NoError(t, yaml.Unmarshal([]byte(src), &edits))

	e := NewEditor(NewFixedGenerator("n-1"))
	got, err := e.ApplyAll(tree.Forest{}, edits)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tree.TagButton, got[0].Tag)
	assert.Equal(t, "Continuar", got[0].Content)
	assert.Equal(t, []string{"bg-blue-600", "text-white"}, got[0].Classes)

	_, err = e.ApplyAll(got, []Edit{{Op: OpRemove, ID: "n-1"}, {Op: "bogus"}})
	assert.ErrorContains(t, err, "edit 1:")
}
