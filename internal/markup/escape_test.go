package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&quot;&#39;", Escape(`&<>"'`))
	assert.Equal(t, "plain", Escape("plain"))
	assert.Equal(t, "", Escape(""))
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"Imagen":         "Imagen",
		"a b":            "a%20b",
		"A-Z_a.z!~*'()":  "A-Z_a.z!~*'()",
		"&amp;":          "%26amp%3B",
		"Mar\u00eda":     "Mar%C3%ADa",
		"50%/x?y=1#frag": "50%25%2Fx%3Fy%3D1%23frag",
	}
	for in, want := range tests {
		assert.Equal(t, want, EncodeURIComponent(in), in)
	}
}
