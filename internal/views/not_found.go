package views

import (
	"time"

	g "maragu.dev/gomponents"

	"finitefield.org/docsite/internal/nav"
	"finitefield.org/docsite/internal/pager"
	"finitefield.org/docsite/internal/shell"
)

const notFoundHTML = `<h1>Page not found</h1><p>The page you are looking for does not exist. Pick another one from the navigation.</p>`

// NotFoundPage renders the shell around a not-found message. A listed page
// whose file is missing is still not found: nothing is highlighted and there
// is no pagination.
func NotFoundPage(site Site, v shell.View) g.Node {
	v.Page.Title = "Page not found"
	v.Page.HTML = notFoundHTML
	v.Page.ID = ""
	v.Page.UpdatedAt = time.Time{}
	v.Links = pager.Links{}
	v.Crumbs = nil
	v.Groups = inactive(v.Groups)
	return DocsPage(site, v)
}

func inactive(groups []nav.Group) []nav.Group {
	out := make([]nav.Group, len(groups))
	for i, grp := range groups {
		items := make([]nav.Item, len(grp.Items))
		for j, it := range grp.Items {
			it.Active = false
			items[j] = it
		}
		out[i] = nav.Group{Label: grp.Label, Items: items}
	}
	return out
}
