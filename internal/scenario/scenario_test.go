package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/testutil"
	"github.com/roach88/treelab/internal/tree"
)

var (
	N = testutil.N
	C = testutil.C
	F = testutil.F
)

func TestBuiltin_IDs(t *testing.T) {
	c := Builtin()
	assert.Equal(t, []string{
		"button-primary",
		"product-card",
		"level-1-card",
		"level-2-hero",
		"level-3-toolbar",
		"level-4-profile",
		"level-5-mini-dashboard",
	}, c.IDs())
	assert.Equal(t, DefaultID, c.DefaultID())
	assert.Equal(t, 7, c.Len())
}

func TestBuiltin_TargetsScoreFull(t *testing.T) {
	for _, s := range Builtin().All() {
		t.Run(s.ID, func(t *testing.T) {
			r := evaluate.Run(s.Target, s.Checks)
			assert.Empty(t, r.Failed())
			assert.Equal(t, 100, r.Score)
			assert.Equal(t, 100, s.MaxScore())
		})
	}
}

func TestBuiltin_CheckIDsUnique(t *testing.T) {
	for _, s := range Builtin().All() {
		seen := map[string]bool{}
		for _, c := range s.Checks {
			assert.False(t, seen[c.ID], "%s: duplicate check %s", s.ID, c.ID)
			seen[c.ID] = true
			assert.NotEmpty(t, c.Label)
		}
	}
}

func TestButtonPrimary(t *testing.T) {
	s, ok := Builtin().Get("button-primary")
	require.True(t, ok)

	t.Run("styled button passes every check", func(t *testing.T) {
		f := F(N("1", tree.TagButton, "Continuar", C("bg-blue-600", "text-white", "rounded-lg", "hover:bg-blue-700")))
		r := evaluate.Run(f, s.Checks)
		assert.True(t, r.Perfect())
		assert.Equal(t, 100, r.Score)
	})

	t.Run("bare button fails style and state", func(t *testing.T) {
		f := F(N("1", tree.TagButton, "Continuar", nil))
		r := evaluate.Run(f, s.Checks)
		assert.Equal(t, []string{"btn-exists", "btn-text"}, r.Passed())
		assert.Equal(t, []string{"btn-primary-class", "btn-state"}, r.Failed())
		assert.Equal(t, 50, r.Score)
	})

	t.Run("text compare is trimmed and case-insensitive", func(t *testing.T) {
		f := F(N("1", tree.TagButton, "  CONTINUAR ", nil))
		r := evaluate.Run(f, s.Checks)
		assert.Contains(t, r.Passed(), "btn-text")
	})

	t.Run("only the first button is inspected", func(t *testing.T) {
		f := F(
			N("1", tree.TagButton, "Volver", nil),
			N("2", tree.TagButton, "Continuar", C("bg-blue-600", "text-white", "rounded-lg", "focus-visible:ring-4")),
		)
		r := evaluate.Run(f, s.Checks)
		assert.Equal(t, []string{"btn-exists"}, r.Passed())
	})

	t.Run("starter earns existence and text", func(t *testing.T) {
		r := evaluate.Run(s.Starter, s.Checks)
		assert.Equal(t, 50, r.Score)
	})
}

func TestProductCard(t *testing.T) {
	s, ok := Builtin().Get("product-card")
	require.True(t, ok)

	t.Run("complete card passes", func(t *testing.T) {
		f := F(N("root", tree.TagArticle, "", C("rounded-xl", "border", "shadow-sm"),
			N("img", tree.TagImg, "Producto", nil),
			N("title", tree.TagH3, "Reloj", nil),
			N("price", tree.TagP, "$49.00", nil),
			N("btn", tree.TagButton, "Anadir", C("bg-slate-900")),
		))
		r := evaluate.Run(f, s.Checks)
		assert.True(t, r.Perfect())
	})

	t.Run("unstructured div fails", func(t *testing.T) {
		f := F(N("root", tree.TagDiv, "Sin estructura", nil))
		r := evaluate.Run(f, s.Checks)
		assert.Empty(t, r.Passed())
		assert.Equal(t, 0, r.Score)
	})

	t.Run("image without alt", func(t *testing.T) {
		f := F(N("img", tree.TagImg, "  ", nil), N("p", tree.TagP, "$ 5", nil))
		r := evaluate.Run(f, s.Checks)
		assert.Equal(t, []string{"card-price"}, r.Passed())
	})
}

func TestLevelOneCard_Partial(t *testing.T) {
	s, ok := Builtin().Get("level-1-card")
	require.True(t, ok)

	f := F(N("card", tree.TagArticle, "", C("rounded-xl", "border", "bg-white", "p-6", "shadow-sm"),
		N("title", tree.TagH2, "Mi tarjeta", C("text-lg", "font-semibold")),
		N("cta", tree.TagButton, "Comenzar", C("bg-blue-600", "text-white")),
	))
	r := evaluate.Run(f, s.Checks)
	assert.Equal(t, []string{"l1-card", "l1-title"}, r.Passed())
	assert.Equal(t, 45, r.Score)
}

func TestLevelFourProfile_NameAlternatives(t *testing.T) {
	s, ok := Builtin().Get("level-4-profile")
	require.True(t, ok)

	byContent := evaluate.Run(F(N("n", tree.TagP, "MARÍA", nil)), s.Checks)
	assert.Equal(t, []string{"l4-name"}, byContent.Passed())

	byClasses := evaluate.Run(F(N("n", tree.TagSpan, "Ana", C("font-semibold", "text-lg"))), s.Checks)
	assert.Equal(t, []string{"l4-name"}, byClasses.Passed())
}

func TestLevelFiveDashboard_MetricsNeedTwo(t *testing.T) {
	s, ok := Builtin().Get("level-5-mini-dashboard")
	require.True(t, ok)

	one := evaluate.Run(F(N("m1", tree.TagDiv, "", C("bg-slate-50", "p-3"))), s.Checks)
	assert.NotContains(t, one.Passed(), "l5-metrics")

	two := evaluate.Run(F(
		N("m1", tree.TagDiv, "", C("bg-slate-50", "p-3")),
		N("m2", tree.TagDiv, "", C("p-3", "bg-slate-50")),
	), s.Checks)
	assert.Contains(t, two.Passed(), "l5-metrics")
}

func TestLevelStarters(t *testing.T) {
	c := Builtin()
	for i, id := range []string{"level-1-card", "level-2-hero", "level-3-toolbar", "level-4-profile", "level-5-mini-dashboard"} {
		s, ok := c.Get(id)
		require.True(t, ok)
		require.Len(t, s.Starter, 1)
		assert.Equal(t, "lvl"+string(rune('1'+i))+"-0-eval-root", s.Starter[0].ID)
		assert.Equal(t, tree.TagDiv, s.Starter[0].Tag)
		assert.Equal(t, 0, evaluate.Run(s.Starter, s.Checks).Score)
	}
}

func TestBuiltin_FreshTrees(t *testing.T) {
	a, _ := Builtin().Get("level-1-card")
	b, _ := Builtin().Get("level-1-card")
	assert.NotSame(t, a.Target[0], b.Target[0])
	assert.True(t, tree.Equal(a.Target, b.Target))
}

func TestCatalog_Registry(t *testing.T) {
	reg := Builtin().Registry()
	f := F(N("1", tree.TagButton, "Continuar", C("bg-blue-600", "text-white", "rounded-lg", "hover:bg-blue-700")))

	r := reg.Evaluate(f, "button-primary")
	assert.False(t, r.Fallback)
	assert.Equal(t, 100, r.Score)

	r = reg.Evaluate(f, "no-such-level")
	assert.True(t, r.Fallback)
	assert.Equal(t, DefaultID, r.Battery)
	assert.Equal(t, []string{"l1-hover"}, r.Passed())
	assert.Equal(t, 10, r.Score)
}

func TestNewCatalog_Errors(t *testing.T) {
	one := &Scenario{ID: "a", Checks: []evaluate.Check{{ID: "x", Weight: 1}}}

	_, err := NewCatalog("missing", one)
	assert.ErrorContains(t, err, "default scenario")

	_, err = NewCatalog("a", one, one)
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewCatalog("a", &Scenario{})
	assert.ErrorContains(t, err, "id is required")
}

func TestMerge(t *testing.T) {
	base := Builtin()
	replacement := &Scenario{ID: "product-card", Title: "Otra", Checks: []evaluate.Check{{ID: "x", Weight: 1}}}
	extra := &Scenario{ID: "extra", Checks: []evaluate.Check{{ID: "y", Weight: 1}}}

	merged := Merge(base, replacement, extra)

	assert.Equal(t, 8, merged.Len())
	assert.Equal(t, "extra", merged.IDs()[7])
	assert.Equal(t, "product-card", merged.IDs()[1])
	got, _ := merged.Get("product-card")
	assert.Equal(t, "Otra", got.Title)

	orig, _ := base.Get("product-card")
	assert.Equal(t, "Card de producto", orig.Title)
	assert.Equal(t, 7, base.Len())
}
