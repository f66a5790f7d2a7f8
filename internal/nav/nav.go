package nav

import (
	"strings"

	"finitefield.org/docsite/internal/catalog"
)

// CommunityLabel heads the external links after all sections.
const CommunityLabel = "Community"

// Item is a view model for one sidebar link.
type Item struct {
	Key      string
	Href     string
	Label    string
	Active   bool
	External bool
}

// Group is a sidebar heading and its links.
type Group struct {
	Label string
	Items []Item
}

// Crumb represents a breadcrumb entry.
type Crumb struct {
	Href   string
	Label  string
	Active bool
}

// Build renders the sidebar for currentPath: one group per section, then the
// community links. An item is active only when currentPath is exactly
// "/"+id.
func Build(cat *catalog.Catalog, currentPath string) []Group {
	sections := cat.Sections()
	groups := make([]Group, 0, len(sections)+1)
	for _, s := range sections {
		g := Group{Label: s.Label, Items: make([]Item, 0, len(s.Pages))}
		for _, p := range s.Pages {
			href := p.Path()
			g.Items = append(g.Items, Item{
				Key:      p.ID,
				Href:     href,
				Label:    p.Title,
				Active:   currentPath == href,
				External: IsExternal(href),
			})
		}
		groups = append(groups, g)
	}

	links := cat.Community()
	if len(links) > 0 {
		g := Group{Label: CommunityLabel, Items: make([]Item, 0, len(links))}
		for _, l := range links {
			g.Items = append(g.Items, Item{
				Key:      l.Href,
				Href:     l.Href,
				Label:    l.Label,
				External: IsExternal(l.Href),
			})
		}
		groups = append(groups, g)
	}
	return groups
}

// IsExternal reports whether href leaves the docs site.
func IsExternal(href string) bool {
	return strings.HasPrefix(href, "http")
}

// Breadcrumbs builds Docs > Section > Page for currentPath. Paths outside the
// catalog get the Docs crumb only.
func Breadcrumbs(cat *catalog.Catalog, currentPath string) []Crumb {
	crumbs := []Crumb{{Href: "/", Label: "Docs"}}
	id := strings.TrimPrefix(currentPath, "/")
	entry, ok := cat.Lookup(id)
	if id == "" || !ok {
		crumbs[0].Active = true
		return crumbs
	}
	if label, ok := cat.SectionOf(id); ok && label != "" {
		crumbs = append(crumbs, Crumb{Label: label})
	}
	crumbs = append(crumbs, Crumb{Href: entry.Path(), Label: entry.Title, Active: true})
	return crumbs
}
