// Package shell is the docs page shell: the per-visitor router, the mobile
// panel controller subscribed to it, and the view data derived from both.
package shell

import (
	"sync"

	"finitefield.org/docsite/internal/catalog"
	"finitefield.org/docsite/internal/content"
	"finitefield.org/docsite/internal/nav"
	"finitefield.org/docsite/internal/pager"
	"finitefield.org/docsite/internal/panel"
	"finitefield.org/docsite/internal/router"
)

// Shell is one mounted docs page shell.
type Shell struct {
	router *router.Router
	panel  *panel.Controller
	once   sync.Once
}

// New mounts a shell positioned at initialPath with the panel closed.
func New(initialPath string) *Shell {
	r := router.New(initialPath)
	return &Shell{router: r, panel: panel.Mount(r)}
}

// Navigate moves to path. A transition closes the panel.
func (s *Shell) Navigate(path string) bool { return s.router.Navigate(path) }

// Toggle flips the panel and returns the new state.
func (s *Shell) Toggle() panel.State { return s.panel.Toggle() }

// IsOpen reports whether the panel is expanded.
func (s *Shell) IsOpen() bool { return s.panel.IsOpen() }

// Path is the current path.
func (s *Shell) Path() string { return s.router.Path() }

// Mounted reports whether the navigation subscription is still held.
func (s *Shell) Mounted() bool { return s.panel.Mounted() }

// Subscribers exposes the router's live subscription count.
func (s *Shell) Subscribers() int { return s.router.Subscribers() }

// Close unmounts the shell, releasing its subscription.
func (s *Shell) Close() {
	s.once.Do(s.panel.Unmount)
}

// View is everything the page template needs, computed from an injected
// catalog and the shell's current state.
type View struct {
	Path   string
	Open   bool
	Groups []nav.Group
	Crumbs []nav.Crumb
	Links  pager.Links
	Page   content.Page
}

// View derives the render data for page against cat.
func (s *Shell) View(cat *catalog.Catalog, page content.Page) View {
	path := s.Path()
	return View{
		Path:   path,
		Open:   s.IsOpen(),
		Groups: nav.Build(cat, path),
		Crumbs: nav.Breadcrumbs(cat, path),
		Links:  pager.Neighbors(cat.Flat(), path),
		Page:   page,
	}
}
