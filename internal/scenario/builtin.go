package scenario

import (
	"regexp"

	"github.com/roach88/treelab/internal/editor"
	"github.com/roach88/treelab/internal/evaluate"
	"github.com/roach88/treelab/internal/tree"
)

var (
	reBackground = regexp.MustCompile(`^bg-`)
	reRounded    = regexp.MustCompile(`^rounded`)
	reShadow     = regexp.MustCompile(`^shadow`)
	reState      = regexp.MustCompile(`^(hover:|focus-visible:)`)
	rePrice      = regexp.MustCompile(`\$\s*\d`)
)

// Builtin returns the built-in catalog. Each call builds fresh trees.
func Builtin() *Catalog {
	c, err := NewCatalog(DefaultID,
		buttonPrimary(),
		productCard(),
		levelOneCard(),
		levelTwoHero(),
		levelThreeToolbar(),
		levelFourProfile(),
		levelFiveDashboard(),
	)
	if err != nil {
		panic("scenario: invalid built-in catalog: " + err.Error())
	}
	return c
}

func node(id string, tag tree.Tag, content string, classes []string, children ...*tree.Node) *tree.Node {
	if classes == nil {
		classes = []string{}
	}
	if children == nil {
		children = []*tree.Node{}
	}
	return &tree.Node{ID: id, Tag: tag, Content: content, Classes: classes, Children: children}
}

func classes(c ...string) []string { return c }

// levelStarter is the single empty div every level starts from, with ids
// prefixed per level.
func levelStarter(prefix string) tree.Forest {
	return editor.CloneWithPrefix(tree.Forest{node("eval-root", tree.TagDiv, "", nil)}, prefix)
}

func buttonPrimary() *Scenario {
	button := evaluate.TagIs(tree.TagButton)
	return &Scenario{
		ID:    "button-primary",
		Title: "Botón primario",
		Level: "Fácil",
		Description: "Construye un botón principal sin escribir código manual.\n\n" +
			"Criterios:\n" +
			"- Debe existir un <button> con texto \"Continuar\".\n" +
			"- Debe usar clases de botón primario.\n" +
			"- Debe incluir estado de hover y/o focus-visible.",
		Starter: tree.Forest{node("button-primary-root", tree.TagButton, "Continuar", nil)},
		Target: tree.Forest{
			node("button-primary-root", tree.TagButton, "Continuar", classes(
				"inline-flex", "items-center", "justify-center", "rounded-lg", "bg-blue-600",
				"px-4", "py-2", "text-sm", "font-semibold", "text-white", "shadow-sm",
				"hover:bg-blue-700", "focus-visible:outline-none", "focus-visible:ring-4",
			)),
		},
		Checks: []evaluate.Check{
			{
				ID:        "btn-exists",
				Label:     "Existe un elemento <button>",
				Weight:    25,
				Predicate: evaluate.Any(button),
			},
			{
				ID:        "btn-text",
				Label:     `El botón contiene el texto "Continuar"`,
				Weight:    25,
				Predicate: evaluate.FirstThen(button, evaluate.ContentEquals("continuar")),
			},
			{
				ID:     "btn-primary-class",
				Label:  "Incluye clases primarias (bg + text-white + rounded)",
				Weight: 25,
				Predicate: evaluate.FirstThen(button, evaluate.All(
					evaluate.ClassMatches(reBackground),
					evaluate.HasClass("text-white"),
					evaluate.ClassMatches(reRounded),
				)),
			},
			{
				ID:        "btn-state",
				Label:     "Incluye clase de estado hover o focus-visible",
				Weight:    25,
				Predicate: evaluate.FirstThen(button, evaluate.ClassMatches(reState)),
			},
		},
	}
}

func productCard() *Scenario {
	return &Scenario{
		ID:    "product-card",
		Title: "Card de producto",
		Level: "Fácil/Medio",
		Description: "Construye una card con imagen, nombre, precio y botón.\n\n" +
			"Criterios:\n" +
			"- Contenedor con borde, radio y sombra.\n" +
			"- Imagen con texto alternativo.\n" +
			"- Precio visible (por ejemplo \"$49.00\").\n" +
			"- Botón de acción.",
		Starter: tree.Forest{node("card-root", tree.TagArticle, "", nil)},
		Target: tree.Forest{
			node("card-root", tree.TagArticle, "", classes("w-full", "max-w-sm", "overflow-hidden", "rounded-xl", "border", "border-slate-200", "bg-white", "shadow-sm"),
				node("card-media", tree.TagDiv, "", classes("w-full", "bg-slate-100"),
					node("card-img", tree.TagImg, "Producto", classes("h-full", "w-full", "object-cover")),
				),
				node("card-body", tree.TagDiv, "", classes("space-y-3", "p-4"),
					node("card-heading", tree.TagDiv, "", classes("space-y-1"),
						node("card-title", tree.TagH3, "Reloj minimal", classes("text-base", "font-semibold", "text-slate-900")),
						node("card-edition", tree.TagP, "Edición 2026", classes("text-sm", "text-slate-600")),
					),
					node("card-footer", tree.TagDiv, "", classes("flex", "items-center", "justify-between"),
						node("card-price", tree.TagP, "$49.00", classes("text-lg", "font-bold", "text-slate-900")),
						node("card-btn", tree.TagButton, "Añadir", classes("rounded-lg", "bg-slate-900", "px-3", "py-2", "text-sm", "font-semibold", "text-white", "hover:bg-slate-800")),
					),
				),
			),
		},
		Checks: []evaluate.Check{
			{
				ID:        "card-container",
				Label:     "Hay contenedor con borde + rounded + shadow",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.All(evaluate.ClassMatches(reRounded), evaluate.HasClass("border"), evaluate.ClassMatches(reShadow))),
			},
			{
				ID:        "card-image",
				Label:     "Hay una imagen con alt (contenido de img)",
				Weight:    25,
				Predicate: evaluate.FirstThen(evaluate.TagIs(tree.TagImg), evaluate.ContentNotBlank()),
			},
			{
				ID:        "card-price",
				Label:     "Existe un texto que parece precio",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.ContentMatches(rePrice)),
			},
			{
				ID:        "card-button",
				Label:     "Existe un botón de acción",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.TagIs(tree.TagButton)),
			},
		},
	}
}

func levelOneCard() *Scenario {
	return &Scenario{
		ID:          "level-1-card",
		Title:       "Nivel 1 - Card básica",
		Level:       "Fácil",
		Description: "Replica una card simple con título, texto y botón.",
		Starter:     levelStarter("lvl1"),
		Target: tree.Forest{
			node("lvl1-target-card", tree.TagDiv, "", classes("max-w-sm", "rounded-xl", "border", "border-slate-200", "bg-white", "p-6", "shadow-sm"),
				node("lvl1-title", tree.TagH3, "Tarjeta de Curso", classes("text-lg", "font-semibold", "text-slate-900")),
				node("lvl1-text", tree.TagP, "Aprende Tailwind CSS creando interfaces reales.", classes("mt-2", "text-sm", "text-slate-700")),
				node("lvl1-btn", tree.TagButton, "Comenzar", classes("mt-2", "rounded-lg", "bg-blue-600", "px-4", "py-2", "text-white", "hover:bg-blue-700")),
			),
		},
		Checks: []evaluate.Check{
			{
				ID:     "l1-card",
				Label:  "Contenedor card con borde, sombra y espaciado",
				Weight: 25,
				Predicate: evaluate.Any(evaluate.All(
					evaluate.TagIs(tree.TagDiv, tree.TagArticle),
					evaluate.HasAllClasses("rounded-xl", "border", "bg-white", "p-6"),
					evaluate.HasAnyClass("max-w-sm", "shadow-sm"),
				)),
			},
			{
				ID:     "l1-title",
				Label:  "Título correcto con tipografía requerida",
				Weight: 20,
				Predicate: evaluate.Any(evaluate.All(
					evaluate.TagIs(tree.TagH3, tree.TagH2),
					evaluate.HasAllClasses("text-lg", "font-semibold"),
					evaluate.ContentContains("tarjeta"),
				)),
			},
			{
				ID:     "l1-text",
				Label:  "Texto descriptivo con estilo correcto",
				Weight: 20,
				Predicate: evaluate.Any(evaluate.All(
					evaluate.TagIs(tree.TagP),
					evaluate.ContentContains("tailwind"),
					evaluate.HasAllClasses("mt-2", "text-sm"),
				)),
			},
			{
				ID:     "l1-button",
				Label:  "Botón principal con clases base",
				Weight: 25,
				Predicate: evaluate.Any(evaluate.All(
					evaluate.TagIs(tree.TagButton),
					evaluate.ContentContains("comenzar"),
					evaluate.HasAllClasses("bg-blue-600", "text-white", "rounded-lg"),
				)),
			},
			{
				ID:        "l1-hover",
				Label:     "Estado hover en botón",
				Weight:    10,
				Predicate: evaluate.Any(evaluate.HasClass("hover:bg-blue-700")),
			},
		},
	}
}

func levelTwoHero() *Scenario {
	return &Scenario{
		ID:          "level-2-hero",
		Title:       "Nivel 2 - Hero compacto",
		Level:       "Fácil/Medio",
		Description: "Construye un bloque hero con título centrado y CTA.",
		Starter:     levelStarter("lvl2"),
		Target: tree.Forest{
			node("lvl2-hero", tree.TagSection, "", classes("w-full", "max-w-sm", "mx-auto", "rounded-xl", "bg-slate-900", "p-6"),
				node("lvl2-title", tree.TagH2, "Domina Tailwind", classes("text-xl", "font-bold", "text-white", "text-center")),
				node("lvl2-copy", tree.TagP, "Crea interfaces limpias y modernas.", classes("mt-2", "text-sm", "text-white", "text-center")),
				node("lvl2-btn", tree.TagButton, "Inscribirme", classes("mt-2", "rounded-lg", "bg-blue-600", "px-4", "py-2", "text-white")),
			),
		},
		Checks: []evaluate.Check{
			{
				ID:        "l2-hero",
				Label:     "Contenedor hero oscuro con padding y bordes redondeados",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.HasAllClasses("bg-slate-900", "p-6", "rounded-xl")),
			},
			{
				ID:        "l2-title",
				Label:     "Título centrado con texto blanco",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagHasPrefix("h"), evaluate.HasAllClasses("text-center", "text-white"))),
			},
			{
				ID:        "l2-copy",
				Label:     "Texto descriptivo con margen superior",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagIs(tree.TagP), evaluate.HasAllClasses("mt-2", "text-sm"))),
			},
			{
				ID:        "l2-cta",
				Label:     "Botón CTA con fondo azul",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagIs(tree.TagButton), evaluate.HasAllClasses("bg-blue-600", "text-white"))),
			},
			{
				ID:        "l2-width",
				Label:     "Ancho controlado con max-w-sm y centrado",
				Weight:    10,
				Predicate: evaluate.Any(evaluate.HasAllClasses("max-w-sm", "mx-auto")),
			},
		},
	}
}

func levelThreeToolbar() *Scenario {
	return &Scenario{
		ID:          "level-3-toolbar",
		Title:       "Nivel 3 - Toolbar",
		Level:       "Medio",
		Description: "Crea una barra superior con título y dos acciones.",
		Starter:     levelStarter("lvl3"),
		Target: tree.Forest{
			node("lvl3-toolbar", tree.TagDiv, "", classes("w-full", "rounded-lg", "border", "border-slate-200", "bg-white", "p-4", "shadow-sm", "flex", "justify-between", "items-center"),
				node("lvl3-label", tree.TagP, "Panel de control", classes("text-base", "font-semibold", "text-slate-900")),
				node("lvl3-actions", tree.TagDiv, "", classes("flex", "gap-2"),
					node("lvl3-btn1", tree.TagButton, "Filtrar", classes("rounded", "border", "border-slate-200", "px-3", "py-2")),
					node("lvl3-btn2", tree.TagButton, "Nuevo", classes("rounded", "bg-blue-600", "px-3", "py-2", "text-white")),
				),
			),
		},
		Checks: []evaluate.Check{
			{
				ID:        "l3-bar",
				Label:     "Barra principal en flex con distribución horizontal",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.HasAllClasses("flex", "justify-between", "items-center")),
			},
			{
				ID:        "l3-frame",
				Label:     "Contenedor con borde y sombra",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.HasAllClasses("border", "shadow-sm")),
			},
			{
				ID:        "l3-actions",
				Label:     "Grupo de acciones con gap",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.HasAllClasses("flex", "gap-2")),
			},
			{
				ID:        "l3-primary",
				Label:     "Botón principal con fondo azul",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagIs(tree.TagButton), evaluate.HasClass("bg-blue-600"))),
			},
			{
				ID:        "l3-heading",
				Label:     "Texto de cabecera visible",
				Weight:    15,
				Predicate: evaluate.Any(evaluate.ContentContains("panel")),
			},
		},
	}
}

func levelFourProfile() *Scenario {
	return &Scenario{
		ID:          "level-4-profile",
		Title:       "Nivel 4 - Perfil",
		Level:       "Medio/Avanzado",
		Description: "Diseña una card de perfil con cabecera y acciones.",
		Starter:     levelStarter("lvl4"),
		Target: tree.Forest{
			node("lvl4-card", tree.TagArticle, "", classes("max-w-sm", "rounded-xl", "border", "border-slate-200", "bg-white", "p-6", "shadow-md"),
				node("lvl4-head", tree.TagH3, "María López", classes("text-lg", "font-semibold", "text-slate-900")),
				node("lvl4-role", tree.TagP, "Frontend Developer", classes("mt-2", "text-sm", "text-slate-700")),
				node("lvl4-stat", tree.TagP, "Proyectos: 12", classes("mt-2", "text-sm", "font-medium", "text-slate-900")),
				node("lvl4-cta-wrap", tree.TagDiv, "", classes("mt-2", "flex", "gap-2"),
					node("lvl4-cta1", tree.TagButton, "Mensaje", classes("rounded-lg", "bg-blue-600", "px-3", "py-2", "text-white")),
					node("lvl4-cta2", tree.TagButton, "Seguir", classes("rounded-lg", "border", "border-slate-200", "px-3", "py-2")),
				),
			),
		},
		Checks: []evaluate.Check{
			{
				ID:        "l4-card",
				Label:     "Card de perfil con shadow-md y borde",
				Weight:    25,
				Predicate: evaluate.Any(evaluate.HasAllClasses("shadow-md", "border", "rounded-xl")),
			},
			{
				ID:        "l4-name",
				Label:     "Nombre con estilo de título",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.AnyOf(evaluate.ContentContains("maría"), evaluate.HasAllClasses("text-lg", "font-semibold"))),
			},
			{
				ID:        "l4-role",
				Label:     "Rol o subtítulo con estilo secundario",
				Weight:    15,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagIs(tree.TagP), evaluate.HasAllClasses("text-sm", "text-slate-700"))),
			},
			{
				ID:        "l4-actions",
				Label:     "Zona de acciones en flex",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.HasAllClasses("flex", "gap-2")),
			},
			{
				ID:        "l4-primary",
				Label:     "Al menos un botón primario azul",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagIs(tree.TagButton), evaluate.HasClass("bg-blue-600"))),
			},
		},
	}
}

func levelFiveDashboard() *Scenario {
	return &Scenario{
		ID:          "level-5-mini-dashboard",
		Title:       "Nivel 5 - Mini dashboard",
		Level:       "Avanzado",
		Description: "Construye un mini dashboard con header, bloque de métricas y acciones.",
		Starter:     levelStarter("lvl5"),
		Target: tree.Forest{
			node("lvl5-root", tree.TagSection, "", classes("w-full", "max-w-sm", "mx-auto", "rounded-xl", "border", "border-slate-200", "bg-white", "p-6", "shadow-md"),
				node("lvl5-head", tree.TagDiv, "", classes("flex", "justify-between", "items-center"),
					node("lvl5-title", tree.TagH3, "Dashboard", classes("text-lg", "font-semibold", "text-slate-900")),
					node("lvl5-btn", tree.TagButton, "Actualizar", classes("rounded", "bg-blue-600", "px-3", "py-2", "text-white", "hover:bg-blue-700")),
				),
				node("lvl5-metrics", tree.TagDiv, "", classes("mt-2", "flex", "gap-2"),
					node("lvl5-m1", tree.TagDiv, "Ventas 120", classes("rounded", "bg-slate-50", "p-3", "text-sm", "font-medium")),
					node("lvl5-m2", tree.TagDiv, "Leads 80", classes("rounded", "bg-slate-50", "p-3", "text-sm", "font-medium")),
				),
			),
		},
		Checks: []evaluate.Check{
			{
				ID:        "l5-shell",
				Label:     "Contenedor principal tipo dashboard",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.HasAllClasses("max-w-sm", "rounded-xl", "p-6")),
			},
			{
				ID:        "l5-header",
				Label:     "Header interno con flex y botón",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.HasAllClasses("flex", "justify-between", "items-center")),
			},
			{
				ID:        "l5-refresh",
				Label:     "Botón actualizar con hover",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.All(evaluate.TagIs(tree.TagButton), evaluate.HasAllClasses("bg-blue-600", "hover:bg-blue-700"))),
			},
			{
				ID:        "l5-metrics",
				Label:     "Bloque de métricas con dos tarjetas",
				Weight:    20,
				Predicate: evaluate.AtLeast(2, evaluate.HasAllClasses("bg-slate-50", "p-3")),
			},
			{
				ID:        "l5-emphasis",
				Label:     "Uso de tipografía de énfasis en métricas o título",
				Weight:    20,
				Predicate: evaluate.Any(evaluate.HasAnyClass("font-semibold", "font-medium")),
			},
		},
	}
}
