package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FillsNilCollections(t *testing.T) {
	f := Forest{{ID: "x", Tag: TagDiv, Children: []*Node{{ID: "y", Tag: TagP}}}, nil}

	got := Normalize(f)

	require.Len(t, got, 1)
	assert.NotNil(t, got[0].Classes)
	require.Len(t, got[0].Children, 1)
	assert.NotNil(t, got[0].Children[0].Classes)
	assert.NotNil(t, got[0].Children[0].Children)
	// the input is untouched
	assert.Nil(t, f[0].Classes)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(sample(), sample()))
	assert.True(t, Equal(nil, Forest{}))

	other := sample()
	other[1] = &Node{ID: "b", Tag: TagButton, Classes: []string{"rounded-lg"}}
	assert.False(t, Equal(sample(), other))
}

func TestDepth(t *testing.T) {
	f := sample()

	tests := []struct {
		id    string
		level int
		found bool
	}{
		{"a", 0, true},
		{"a1", 1, true},
		{"a1x", 2, true},
		{"b", 0, true},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			level, ok := Depth(f, tt.id)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestClone_OwnsSlices(t *testing.T) {
	n := &Node{ID: "x", Tag: TagDiv, Classes: []string{"a"}}
	c := n.Clone()
	c.Classes[0] = "b"
	assert.Equal(t, "a", n.Classes[0])
	assert.NotNil(t, c.Children)
}

func TestCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Equal(t, 18, c.Len())
	assert.True(t, c.Contains(TagTextArea))
	assert.False(t, c.Contains("marquee"))

	custom := NewCatalog("div", "div", "", "x-card")
	assert.Equal(t, []Tag{"div", "x-card"}, custom.Tags())
}

func TestFilterClasses(t *testing.T) {
	groups := DefaultClassGroups()

	assert.Equal(t, []string{"bg-blue-600", "bg-blue-700"}, FilterClasses(groups, "Fondos", "BLUE"))
	assert.Len(t, FilterClasses(groups, "Estados", ""), 3)
	assert.Empty(t, FilterClasses(groups, "Nope", ""))
}
