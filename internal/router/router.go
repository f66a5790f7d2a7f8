package router

import (
	"strings"
	"sync"
)

// Router tracks the current docs path for one shell and notifies subscribers
// before each transition to a different path.
type Router struct {
	navMu sync.Mutex // serialises Navigate

	mu       sync.Mutex
	path     string
	nextID   uint64
	handlers map[uint64]func(target string)
}

// New returns a Router positioned at initialPath.
func New(initialPath string) *Router {
	return &Router{
		path:     Normalize(initialPath),
		handlers: map[uint64]func(string){},
	}
}

// Path returns the current path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// OnNavigationStart registers h to run before every transition. The returned
// func removes the handler; calling it more than once is a no-op.
func (r *Router) OnNavigationStart(h func(target string)) func() {
	if h == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.handlers[id] = h
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.handlers, id)
			r.mu.Unlock()
		})
	}
}

// Subscribers reports the number of live navigation-start handlers.
func (r *Router) Subscribers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers)
}

// Navigate moves to target, which may be a bare page id or a path. Handlers
// run before the new path is committed. Navigating to the current path is not
// a transition and emits nothing.
func (r *Router) Navigate(target string) bool {
	target = Normalize(target)

	r.navMu.Lock()
	defer r.navMu.Unlock()

	r.mu.Lock()
	if target == r.path {
		r.mu.Unlock()
		return false
	}
	handlers := make([]func(string), 0, len(r.handlers))
	for _, h := range r.handlers {
		handlers = append(handlers, h)
	}
	r.mu.Unlock()

	// handlers may call back into the router (Path, unsubscribe)
	for _, h := range handlers {
		h(target)
	}

	r.mu.Lock()
	r.path = target
	r.mu.Unlock()
	return true
}

// Normalize turns an id or path into a rooted path without a trailing slash.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
