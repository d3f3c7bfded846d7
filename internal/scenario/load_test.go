package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/tree"
)

func TestLoad_Pricing(t *testing.T) {
	s, err := Load("testdata/pricing.yaml")
	require.NoError(t, err)

	assert.Equal(t, "pricing-table", s.ID)
	assert.Equal(t, "Tabla de precios", s.Title)
	assert.Equal(t, "Medio", s.Level)
	require.Len(t, s.Starter, 1)
	assert.Equal(t, "price-0-root", s.Starter[0].ID)
	assert.NotNil(t, s.Starter[0].Classes)
	assert.NotNil(t, s.Starter[0].Children)

	require.Len(t, s.Checks, 4)
	assert.Equal(t, "columns", s.Checks[3].Label, "label defaults to id")
	assert.Equal(t, 100, s.MaxScore())

	r := evaluate.Run(s.Target, s.Checks)
	assert.True(t, r.Perfect(), "failed: %v", r.Failed())

	r = evaluate.Run(s.Starter, s.Checks)
	assert.Equal(t, 0, r.Score)
}

func TestParse_Rules(t *testing.T) {
	src := `
id: rules
checks:
  - id: first-button
    weight: 50
    first: {find: {tag: [button]}, then: {any_class: [rounded, rounded-lg]}}
  - id: two-items
    weight: 50
    at_least: {count: 2, tag: [li], content_contains: ITEM}
`
	s, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "rules", s.Title)

	f := tree.Forest{
		{ID: "b", Tag: tree.TagButton, Classes: []string{"rounded-lg"}},
		{ID: "l", Tag: tree.TagUl, Children: []*tree.Node{
			{ID: "1", Tag: tree.TagLi, Content: "item uno"},
			{ID: "2", Tag: tree.TagLi, Content: "Item dos"},
		}},
	}
	r := evaluate.Run(f, s.Checks)
	assert.True(t, r.Perfect())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing id", "checks: [{id: a, weight: 1, any: {}}]", "id is required"},
		{"no checks", "id: x\nchecks: []", "checks list is required"},
		{"zero weight", "id: x\nchecks: [{id: a, weight: 0, any: {}}]", "weight must be positive"},
		{"no kind", "id: x\nchecks: [{id: a, weight: 1}]", "exactly one of"},
		{"two kinds", "id: x\nchecks: [{id: a, weight: 1, any: {}, expr: 'true'}]", "exactly one of"},
		{"bad class pattern", "id: x\nchecks: [{id: a, weight: 1, any: {class_pattern: '['}}]", "class_pattern"},
		{"bad content pattern", "id: x\nchecks: [{id: a, weight: 1, first: {find: {}, then: {content_pattern: '('}}}]", "first.then"},
		{"bad count", "id: x\nchecks: [{id: a, weight: 1, at_least: {count: 0}}]", "count must be at least 1"},
		{"bad expr", "id: x\nchecks: [{id: a, weight: 1, expr: 'nodes +'}]", "compile check expression"},
		{"duplicate check", "id: x\nchecks: [{id: a, weight: 1, any: {}}, {id: a, weight: 1, any: {}}]", "duplicate check id"},
		{"unknown rule field", "id: x\nchecks: [{id: a, weight: 1, any: {tags: [p]}}]", "failed to parse YAML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("testdata/unknown_field.yaml")
	assert.ErrorContains(t, err, "failed to parse YAML")
	assert.ErrorContains(t, err, "unknown_field.yaml")

	_, err = Load("testdata/missing.yaml")
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	pricing, err := os.ReadFile("testdata/pricing.yaml")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), pricing, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("id: alpha\nchecks: [{id: a, weight: 1, any: {}}]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	got, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0].ID)
	assert.Equal(t, "pricing-table", got[1].ID)
}

func TestLoadDir_DuplicateID(t *testing.T) {
	dir := t.TempDir()
	body := []byte("id: same\nchecks: [{id: a, weight: 1, any: {}}]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), body, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.yaml"), body, 0o644))

	_, err := LoadDir(dir)
	assert.ErrorContains(t, err, `scenario "same" defined in both one.yaml and two.yaml`)
}
