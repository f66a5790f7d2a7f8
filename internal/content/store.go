package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNotFound is returned when no markdown file exists for a page id.
var ErrNotFound = errors.New("content: not found")

const (
	// DocsSubdir holds one markdown file per page id.
	DocsSubdir = "docs"

	defaultCacheTTL = 5 * time.Minute
)

// Page is a rendered docs page.
type Page struct {
	ID          string
	Title       string
	Description string
	HTML        string
	UpdatedAt   time.Time
}

// Store loads and renders pages from a content directory.
type Store struct {
	dir      string
	renderer *Renderer
	ttl      time.Duration
	noCache  bool

	mu    sync.RWMutex
	items map[string]cacheEntry
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithCacheTTL overrides how long rendered pages are kept.
func WithCacheTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithoutCache renders pages on every Get (dev mode).
func WithoutCache() Option {
	return func(s *Store) { s.noCache = true }
}

// NewStore returns a Store reading from dir.
func NewStore(dir string, renderer *Renderer, opts ...Option) *Store {
	if renderer == nil {
		renderer = NewRenderer()
	}
	s := &Store{
		dir:      dir,
		renderer: renderer,
		ttl:      defaultCacheTTL,
		items:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PagePath returns the markdown file backing id.
func PagePath(dir, id string) string {
	return filepath.Join(dir, DocsSubdir, id+".md")
}

// Get returns the rendered page for id.
func (s *Store) Get(ctx context.Context, id string) (Page, error) {
	id = SanitizeID(id)
	if id == "" {
		return Page{}, ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if !s.noCache {
		if page, ok := s.cached(id); ok {
			return page, nil
		}
	}
	page, err := s.load(id)
	if err != nil {
		return Page{}, err
	}
	if !s.noCache {
		s.store(id, page)
	}
	return page, nil
}

// Invalidate drops every cached page.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.items = map[string]cacheEntry{}
	s.mu.Unlock()
}

func (s *Store) load(id string) (Page, error) {
	file := PagePath(s.dir, id)
	raw, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("content: read %s: %w", file, err)
	}
	front, body, err := ParseDocument(raw)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", file, err)
	}
	html, err := s.renderer.Render(body)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", file, err)
	}
	page := Page{
		ID:          id,
		Title:       front.Title,
		Description: front.Description,
		HTML:        html,
		UpdatedAt:   parseDate(front.UpdatedAt),
	}
	if page.Title == "" {
		page.Title = PrettifyID(id)
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	return page, nil
}

func (s *Store) cached(id string) (Page, bool) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expires) {
		return Page{}, false
	}
	return entry.page, true
}

func (s *Store) store(id string, page Page) {
	s.mu.Lock()
	s.items[id] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}
