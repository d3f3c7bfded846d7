package tree

import (
	"slices"
	"strings"
)

// Catalog is the closed set of tags a document may use.
// It is configuration data: callers may build their own and pass it to the
// schema validator or the CLI.
type Catalog struct {
	tags []Tag
}

// NewCatalog builds a catalog from tags, dropping duplicates and keeping order.
func NewCatalog(tags ...Tag) Catalog {
	seen := make(map[Tag]bool, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return Catalog{tags: out}
}

// DefaultCatalog returns the tags offered by the builder.
func DefaultCatalog() Catalog {
	return NewCatalog(
		TagDiv, TagP, TagSpan, TagH1, TagH2, TagH3, TagA, TagButton, TagImg,
		TagInput, TagTextArea, TagUl, TagLi, TagSection, TagHeader, TagFooter,
		TagNav, TagArticle,
	)
}

// Contains reports whether tag belongs to the catalog.
func (c Catalog) Contains(tag Tag) bool {
	return slices.Contains(c.tags, tag)
}

// Tags returns the catalog's tags in declaration order.
func (c Catalog) Tags() []Tag {
	return slices.Clone(c.tags)
}

// Len returns the number of tags.
func (c Catalog) Len() int {
	return len(c.tags)
}

// ClassGroup is a named bucket of style-class tokens offered to the user.
// Tokens are opaque; treelab never interprets them.
type ClassGroup struct {
	Category string   `json:"category" yaml:"category"`
	Classes  []string `json:"classes" yaml:"classes"`
}

// DefaultClassGroups returns the builder's token palette.
func DefaultClassGroups() []ClassGroup {
	return []ClassGroup{
		{
			Category: "Tipografia",
			Classes: []string{
				"text-sm", "text-base", "text-lg", "text-xl", "font-medium", "font-semibold",
				"font-bold", "text-slate-900", "text-slate-700", "text-white", "text-center",
			},
		},
		{
			Category: "Fondos",
			Classes:  []string{"bg-white", "bg-slate-50", "bg-slate-900", "bg-blue-600", "bg-blue-700"},
		},
		{
			Category: "Espaciado",
			Classes:  []string{"p-2", "p-3", "p-4", "p-6", "px-3", "px-4", "py-2", "py-3", "mt-2", "gap-2", "gap-4"},
		},
		{
			Category: "Layout",
			Classes:  []string{"flex", "flex-col", "items-center", "justify-between", "w-full", "max-w-sm", "mx-auto"},
		},
		{
			Category: "Bordes y sombra",
			Classes:  []string{"rounded", "rounded-lg", "rounded-xl", "border", "border-slate-200", "shadow-sm", "shadow-md"},
		},
		{
			Category: "Estados",
			Classes:  []string{"hover:bg-blue-700", "focus-visible:ring-4", "focus-visible:ring-blue-200"},
		},
	}
}

// FilterClasses returns the tokens of the named category that contain query,
// compared case-insensitively. An empty query returns the whole category.
// Unknown categories yield an empty slice.
func FilterClasses(groups []ClassGroup, category, query string) []string {
	for _, g := range groups {
		if g.Category != category {
			continue
		}
		q := strings.ToLower(strings.TrimSpace(query))
		if q == "" {
			return slices.Clone(g.Classes)
		}
		out := []string{}
		for _, c := range g.Classes {
			if strings.Contains(strings.ToLower(c), q) {
				out = append(out, c)
			}
		}
		return out
	}
	return []string{}
}
