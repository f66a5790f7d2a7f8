package httpserver

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"finitefield.org/docsite/internal/catalog"
	"finitefield.org/docsite/internal/content"
	custommw "finitefield.org/docsite/internal/middleware"
	"finitefield.org/docsite/internal/observability"
	"finitefield.org/docsite/internal/shell"
	"finitefield.org/docsite/internal/views"
)

const togglePath = views.TogglePath

type handlers struct {
	site    string
	baseURL string
	catalog *catalog.Store
	pages   *content.Store
	shells  *shell.Registry
}

func (h *handlers) siteFor(r *http.Request) views.Site {
	return views.Site{
		Name:      h.site,
		BaseURL:   h.baseURL,
		CSRFToken: custommw.SessionFromContext(r.Context()).CSRFToken,
	}
}

// home redirects to the first page of the reading order.
func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	flat := h.catalog.Load().Flat()
	if len(flat) == 0 {
		h.notFound(w, r)
		return
	}
	http.Redirect(w, r, flat[0].Path(), http.StatusFound)
}

// page navigates the session's shell to the requested page and renders it.
func (h *handlers) page(w http.ResponseWriter, r *http.Request) {
	id := content.SanitizeID(chi.URLParam(r, "id"))
	if id == "" {
		h.notFound(w, r)
		return
	}
	path := "/" + id
	sh := h.acquire(r, path)
	sh.Navigate(path)

	page, err := h.pages.Get(r.Context(), id)
	switch {
	case errors.Is(err, content.ErrNotFound):
		h.render(w, r, http.StatusNotFound, views.NotFoundPage(h.siteFor(r), sh.View(h.catalog.Load(), content.Page{})))
		return
	case err != nil:
		observability.FromContext(r.Context()).Error("load page", zap.String("id", id), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, views.DocsPage(h.siteFor(r), sh.View(h.catalog.Load(), page)))
}

// togglePanel flips the mobile panel. htmx gets the nav fragment back; a
// plain form post is sent back to the page it came from.
func (h *handlers) togglePanel(w http.ResponseWriter, r *http.Request) {
	sh := h.acquire(r, custommw.OriginPath(r))
	state := sh.Toggle()
	observability.FromContext(r.Context()).Debug("panel toggled", zap.String("state", state.String()), zap.String("path", sh.Path()))

	w.Header().Add("Vary", "HX-Request")
	if !custommw.IsHTMX(r.Context()) {
		http.Redirect(w, r, sh.Path(), http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, views.NavPanel(h.siteFor(r), sh.View(h.catalog.Load(), content.Page{})))
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	sh := h.acquire(r, r.URL.Path)
	sh.Navigate(r.URL.Path)
	h.render(w, r, http.StatusNotFound, views.NotFoundPage(h.siteFor(r), sh.View(h.catalog.Load(), content.Page{})))
}

func (h *handlers) acquire(r *http.Request, initialPath string) *shell.Shell {
	return h.shells.Acquire(custommw.SessionFromContext(r.Context()).ID, initialPath)
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, node g.Node) {
	var buf bytes.Buffer
	if err := views.Render(&buf, node); err != nil {
		observability.FromContext(r.Context()).Error("render", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
