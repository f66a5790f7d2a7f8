// Package views renders the docs shell with gomponents.
package views

import (
	"encoding/json"
	"io"
	"strconv"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"

	"finitefield.org/docsite/internal/format"
	"finitefield.org/docsite/internal/nav"
	"finitefield.org/docsite/internal/pager"
	"finitefield.org/docsite/internal/seo"
	"finitefield.org/docsite/internal/shell"
)

const (
	// TogglePath is the endpoint flipping the mobile panel.
	TogglePath = "/_shell/panel/toggle"
	// NavRootID is the element replaced by the toggle fragment.
	NavRootID = "docs-nav"
	// CSRFField is the form field carrying the CSRF token for non-htmx posts.
	CSRFField = "csrf_token"

	htmxSrc = "https://unpkg.com/htmx.org@1.9.12"
)

// Site carries per-request values that are not part of the shell view.
type Site struct {
	Name      string
	BaseURL   string
	CSRFToken string
}

// DocsPage renders the full document: sidebar, page body, pagination footer.
func DocsPage(site Site, v shell.View) g.Node {
	meta := seo.ForPage(site.Name, site.BaseURL, v.Page)
	return c.HTML5(c.HTML5Props{
		Title:       meta.Title,
		Description: meta.Description,
		Language:    "en",
		Head: []g.Node{
			h.Link(h.Rel("stylesheet"), h.Href("/assets/docs.css")),
			h.Script(h.Src(htmxSrc), h.Defer()),
			g.If(meta.Canonical != "", h.Link(h.Rel("canonical"), h.Href(meta.Canonical))),
			h.Meta(g.Attr("property", "og:title"), h.Content(meta.OG.Title)),
			h.Meta(g.Attr("property", "og:type"), h.Content(meta.OG.Type)),
			g.If(meta.OG.SiteName != "", h.Meta(g.Attr("property", "og:site_name"), h.Content(meta.OG.SiteName))),
		},
		Body: []g.Node{
			g.Attr("hx-boost", "true"),
			g.Attr("hx-headers", csrfHeaders(site.CSRFToken)),
			h.Div(h.Class("docs-layout"),
				h.Aside(h.Class("docs-sidebar"), NavPanel(site, v)),
				h.Main(h.Class("docs-main"),
					h.Div(h.Class("docs-container"),
						breadcrumbs(v.Crumbs),
						h.Article(h.Class("docs-content"), g.Raw(v.Page.HTML)),
						g.Iff(!v.Page.UpdatedAt.IsZero(), func() g.Node {
							return h.P(h.Class("docs-updated"), g.Text("Last updated "+format.Date(v.Page.UpdatedAt)))
						}),
						Pagination(v.Links),
					),
				),
			),
		},
	})
}

// NavPanel renders the top bar with the disclosure control and the
// collapsible navigation. The toggle endpoint returns this node alone.
func NavPanel(site Site, v shell.View) g.Node {
	open := strconv.FormatBool(v.Open)
	return h.Div(h.ID(NavRootID),
		h.Div(h.Class("docs-bar"),
			h.A(h.Href("/"), h.Class("docs-logo"),
				h.Span(h.Class("visually-hidden"), g.Text(site.Name+" homepage")),
				h.Span(h.Aria("hidden", "true"), g.Text(site.Name)),
			),
			h.Span(h.Class("docs-badge"), g.Text("Beta")),
			h.Form(h.Class("docs-menu"), h.Method("post"), h.Action(TogglePath),
				g.Attr("hx-post", TogglePath),
				g.Attr("hx-target", "#"+NavRootID),
				g.Attr("hx-swap", "outerHTML"),
				h.Input(h.Type("hidden"), h.Name(CSRFField), h.Value(site.CSRFToken)),
				h.Button(h.Type("submit"), h.Class("docs-menu-button"),
					h.Aria("label", "Toggle navigation"),
					h.Aria("controls", "docs-nav-panel"),
					h.Aria("expanded", open),
					g.Text("☰"),
				),
			),
		),
		h.Nav(h.ID("docs-nav-panel"), h.Class("docs-nav-panel"), h.Data("open", open), h.Aria("label", "Documentation"),
			g.Map(v.Groups, func(grp nav.Group) g.Node {
				return h.Div(h.Class("docs-nav-group"),
					NavHeading(grp.Label),
					g.Map(grp.Items, NavItem),
				)
			}),
		),
	)
}

// NavHeading renders a section label.
func NavHeading(label string) g.Node {
	return h.H4(h.Class("docs-nav-heading"), g.Text(label))
}

// NavItem renders one sidebar link. External links open in a new browsing
// context and carry an indicator.
func NavItem(it nav.Item) g.Node {
	return h.A(
		h.Href(it.Href),
		c.Classes{"docs-nav-item": true, "is-active": it.Active},
		g.If(it.Active, h.Aria("current", "page")),
		g.If(it.External, g.Group{h.Target("_blank"), h.Rel("noopener noreferrer")}),
		h.Span(g.Text(it.Label)),
		g.If(it.External, h.Span(h.Class("docs-external"), h.Aria("label", "external link"), g.Text("↗"))),
	)
}

// Pagination renders the previous/next footer, or nothing when the page has
// no neighbours.
func Pagination(links pager.Links) g.Node {
	if links.Empty() {
		return nil
	}
	return h.Nav(h.Class("docs-pagination"), h.Aria("label", "Pagination navigation"),
		g.Iff(links.Previous != nil, func() g.Node {
			return h.Div(h.Class("docs-pagination__previous"),
				h.A(h.Href(links.Previous.Path()), h.Aria("label", "Previous page: "+links.Previous.Title),
					h.Span(h.Class("docs-pagination__label"), g.Text("Previous")),
					h.Span(h.Class("docs-pagination__title"), g.Text(links.Previous.Title)),
				),
			)
		}),
		g.Iff(links.Next != nil, func() g.Node {
			return h.Div(h.Class("docs-pagination__next"),
				h.A(h.Href(links.Next.Path()), h.Aria("label", "Next page: "+links.Next.Title),
					h.Span(h.Class("docs-pagination__label"), g.Text("Next")),
					h.Span(h.Class("docs-pagination__title"), g.Text(links.Next.Title)),
				),
			)
		}),
	)
}

func breadcrumbs(crumbs []nav.Crumb) g.Node {
	if len(crumbs) <= 1 {
		return nil
	}
	return h.Nav(h.Class("docs-breadcrumbs"), h.Aria("label", "Breadcrumb"),
		h.Ol(g.Map(crumbs, func(cr nav.Crumb) g.Node {
			if cr.Href == "" || cr.Active {
				return h.Li(g.If(cr.Active, h.Aria("current", "page")), g.Text(cr.Label))
			}
			return h.Li(h.A(h.Href(cr.Href), g.Text(cr.Label)))
		})),
	)
}

func csrfHeaders(token string) string {
	b, _ := json.Marshal(map[string]string{"X-CSRF-Token": token})
	return string(b)
}

// Render writes n to w. A nil node writes nothing.
func Render(w io.Writer, n g.Node) error {
	if n == nil {
		return nil
	}
	return n.Render(w)
}
