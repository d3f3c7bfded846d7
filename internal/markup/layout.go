package markup

import (
	"strings"

	"github.com/roach88/treelab/internal/tree"
)

// Layout describes a full page: header, optional sidebar, main content and
// footer, each with its own class string and a list of saved component ids to
// embed.
type Layout struct {
	PageClasses    string `json:"page_classes" yaml:"page_classes"`
	HeaderClasses  string `json:"header_classes" yaml:"header_classes"`
	ShellClasses   string `json:"shell_classes" yaml:"shell_classes"`
	SidebarClasses string `json:"sidebar_classes" yaml:"sidebar_classes"`
	ContentClasses string `json:"content_classes" yaml:"content_classes"`
	FooterClasses  string `json:"footer_classes" yaml:"footer_classes"`

	HeaderComponentIDs  []string `json:"header_components" yaml:"header_components"`
	SidebarComponentIDs []string `json:"sidebar_components" yaml:"sidebar_components"`
	ContentComponentIDs []string `json:"content_components" yaml:"content_components"`
	FooterComponentIDs  []string `json:"footer_components" yaml:"footer_components"`

	HeaderTitle  string `json:"header_title" yaml:"header_title"`
	SidebarTitle string `json:"sidebar_title" yaml:"sidebar_title"`
	// SidebarBody holds one navigation entry per line.
	SidebarBody  string `json:"sidebar_body" yaml:"sidebar_body"`
	ContentTitle string `json:"content_title" yaml:"content_title"`
	ContentBody  string `json:"content_body" yaml:"content_body"`
	FooterText   string `json:"footer_text" yaml:"footer_text"`
	ShowSidebar  bool   `json:"show_sidebar" yaml:"show_sidebar"`
}

// DefaultLayout returns the starting page layout.
func DefaultLayout() Layout {
	return Layout{
		PageClasses:    "min-h-screen bg-slate-50 p-6",
		HeaderClasses:  "rounded-lg border border-slate-200 bg-white p-4 shadow-sm",
		ShellClasses:   "mt-4 grid grid-cols-1 gap-4 md:grid-cols-[260px_1fr]",
		SidebarClasses: "rounded-lg border border-slate-200 bg-white p-4 shadow-sm",
		ContentClasses: "rounded-lg border border-slate-200 bg-white p-5 shadow-sm",
		FooterClasses:  "mt-4 rounded-lg border border-slate-200 bg-white p-3 text-sm text-slate-600",
		HeaderTitle:    "Mi sitio web",
		SidebarTitle:   "Navegación",
		SidebarBody:    "Dashboard\nCursos\nRecursos\nPerfil",
		ContentTitle:   "Contenido principal",
		ContentBody:    "Aquí va el contenido principal de la página.",
		FooterText:     "© 2026 Mi sitio",
		ShowSidebar:    true,
	}
}

// ComponentResolver looks up a saved component's forest by id.
type ComponentResolver func(id string) (tree.Forest, bool)

// WithoutComponent drops the component id from every slot.
func (l Layout) WithoutComponent(id string) Layout {
	l.HeaderComponentIDs = without(l.HeaderComponentIDs, id)
	l.SidebarComponentIDs = without(l.SidebarComponentIDs, id)
	l.ContentComponentIDs = without(l.ContentComponentIDs, id)
	l.FooterComponentIDs = without(l.FooterComponentIDs, id)
	return l
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// RenderLayout renders the page. Components are serialized with Serialize and
// joined by newlines; ids the resolver does not know render as empty lines.
// A nil resolver embeds nothing.
func RenderLayout(l Layout, resolve ComponentResolver) string {
	header := componentsMarkup(l.HeaderComponentIDs, resolve)
	sidebarComponents := componentsMarkup(l.SidebarComponentIDs, resolve)
	content := componentsMarkup(l.ContentComponentIDs, resolve)
	footer := componentsMarkup(l.FooterComponentIDs, resolve)

	sidebar := ""
	if l.ShowSidebar {
		var items strings.Builder
		for _, line := range strings.Split(l.SidebarBody, "\n") {
			if line == "" {
				continue
			}
			items.WriteString("<li>" + Escape(line) + "</li>")
		}
		sidebar = `
      <aside class="` + Escape(l.SidebarClasses) + `">
        <h3 class="text-sm font-semibold">` + Escape(l.SidebarTitle) + `</h3>
        <ul class="mt-2 space-y-1 text-sm">
          ` + items.String() + `
        </ul>
        ` + sidebarComponents + `
      </aside>`
	}

	return `<div class="` + Escape(l.PageClasses) + `">
  <header class="` + Escape(l.HeaderClasses) + `">
    <h2 class="text-lg font-semibold">` + Escape(l.HeaderTitle) + `</h2>
    ` + header + `
  </header>
  <main class="` + Escape(l.ShellClasses) + `">
    ` + sidebar + `
    <section class="` + Escape(l.ContentClasses) + `">
      <h3 class="text-lg font-semibold">` + Escape(l.ContentTitle) + `</h3>
      <p class="mt-2 text-sm">` + Escape(l.ContentBody) + `</p>
      ` + content + `
    </section>
  </main>
  <footer class="` + Escape(l.FooterClasses) + `">
    ` + Escape(l.FooterText) + `
    ` + footer + `
  </footer>
</div>`
}

func componentsMarkup(ids []string, resolve ComponentResolver) string {
	if len(ids) == 0 || resolve == nil {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		if f, ok := resolve(id); ok {
			parts[i] = Serialize(f)
		}
	}
	return strings.Join(parts, "\n")
}
