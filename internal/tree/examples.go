package tree

import "strings"

// Example is a ready-made forest a new document can start from.
type Example struct {
	Slug string `json:"slug" yaml:"slug"`
	Name string `json:"name" yaml:"name"`
	Tree Forest `json:"tree" yaml:"tree"`
}

// DefaultExamples returns the builder's starting templates. Each call builds
// fresh nodes, so callers may keep or edit the result.
func DefaultExamples() []Example {
	return []Example{
		{
			Slug: "inicial",
			Name: "Inicial",
			Tree: Forest{
				newNode("root-div", TagDiv, "", []string{"bg-blue-500"},
					newNode("root-text", TagP, "text", []string{"font-bold"}),
				),
			},
		},
		{
			Slug: "tarjeta-basica",
			Name: "Tarjeta basica",
			Tree: Forest{
				newNode("card-1", TagArticle, "",
					[]string{"max-w-sm", "rounded-xl", "border", "border-slate-200", "bg-white", "p-4", "shadow-sm"},
					newNode("card-title-1", TagH3, "Titulo de la tarjeta", []string{"text-base", "font-semibold", "text-slate-900"}),
					newNode("card-text-1", TagP, "Descripcion breve", []string{"mt-2", "text-sm", "text-slate-700"}),
					newNode("card-button-1", TagButton, "Accion",
						[]string{"mt-2", "rounded-lg", "bg-blue-600", "px-3", "py-2", "text-white", "hover:bg-blue-700"}),
				),
			},
		},
		{
			Slug: "boton-primario",
			Name: "Boton primario",
			Tree: Forest{
				newNode("btn-1", TagButton, "Continuar",
					[]string{"rounded-lg", "bg-blue-600", "px-4", "py-2", "text-white", "hover:bg-blue-700"}),
			},
		},
	}
}

// FindExample looks an example up by slug or by name, ignoring case.
func FindExample(examples []Example, key string) (Example, bool) {
	key = strings.TrimSpace(key)
	for _, e := range examples {
		if strings.EqualFold(e.Slug, key) || strings.EqualFold(e.Name, key) {
			return e, true
		}
	}
	return Example{}, false
}

func newNode(id string, tag Tag, content string, classes []string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{ID: id, Tag: tag, Content: content, Classes: classes, Children: children}
}
