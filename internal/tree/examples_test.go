package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultExamples(t *testing.T) {
	examples := DefaultExamples()
	require.Len(t, examples, 3)

	catalog := DefaultCatalog()
	for _, e := range examples {
		t.Run(e.Slug, func(t *testing.T) {
			require.NotEmpty(t, e.Tree)
			assert.True(t, Equal(e.Tree, Normalize(e.Tree)), "collections are non-nil")

			seen := map[string]bool{}
			for _, n := range Walk(e.Tree) {
				assert.True(t, catalog.Contains(n.Tag), n.Tag)
				assert.False(t, seen[n.ID], "duplicate id %s", n.ID)
				seen[n.ID] = true
			}
		})
	}

	card, ok := FindExample(examples, "tarjeta-basica")
	require.True(t, ok)
	assert.Equal(t, []string{"card-1", "card-title-1", "card-text-1", "card-button-1"}, IDs(card.Tree))
}

func TestDefaultExamples_Fresh(t *testing.T) {
	a := DefaultExamples()
	a[2].Tree[0].Content = "Cambiado"

	b := DefaultExamples()
	assert.Equal(t, "Continuar", b[2].Tree[0].Content)
}

func TestFindExample(t *testing.T) {
	examples := DefaultExamples()

	byName, ok := FindExample(examples, "  boton PRIMARIO ")
	require.True(t, ok)
	assert.Equal(t, "boton-primario", byName.Slug)

	bySlug, ok := FindExample(examples, "Inicial")
	require.True(t, ok)
	assert.Equal(t, "root-div", bySlug.Tree[0].ID)

	_, ok = FindExample(examples, "hero")
	assert.False(t, ok)
}
