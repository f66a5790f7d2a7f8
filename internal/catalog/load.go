package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"finitefield.org/docsite/internal/content"
)

// ManifestFile is the route manifest at the root of a content directory.
const ManifestFile = "routes.yaml"

type manifest struct {
	Sections []struct {
		Label string   `yaml:"label"`
		Pages []string `yaml:"pages"`
	} `yaml:"sections"`
	Order     []string `yaml:"order"`
	Community []Link   `yaml:"community"`
}

// Load builds a Catalog from dir/routes.yaml, taking page titles from the
// front matter of dir/docs/<id>.md. When the manifest has no explicit order
// the reading order is the sections concatenated.
func Load(dir string) (*Catalog, error) {
	path := filepath.Join(dir, ManifestFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrManifest, path, err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrManifest, path, err)
	}

	titles := map[string]string{}
	entry := func(id string) (Entry, error) {
		id = strings.TrimSpace(id)
		if t, ok := titles[id]; ok {
			return Entry{ID: id, Title: t}, nil
		}
		t, err := pageTitle(dir, id)
		if err != nil {
			return Entry{}, err
		}
		titles[id] = t
		return Entry{ID: id, Title: t}, nil
	}

	sections := make([]Section, 0, len(m.Sections))
	var concatenated []Entry
	for _, s := range m.Sections {
		sec := Section{Label: strings.TrimSpace(s.Label)}
		for _, id := range s.Pages {
			e, err := entry(id)
			if err != nil {
				return nil, err
			}
			sec.Pages = append(sec.Pages, e)
			concatenated = append(concatenated, e)
		}
		sections = append(sections, sec)
	}

	flat := concatenated
	if len(m.Order) > 0 {
		flat = make([]Entry, 0, len(m.Order))
		for _, id := range m.Order {
			e, err := entry(id)
			if err != nil {
				return nil, err
			}
			flat = append(flat, e)
		}
	}

	community := m.Community
	if len(community) == 0 {
		community = DefaultCommunity
	}
	return New(sections, flat, community), nil
}

func pageTitle(dir, id string) (string, error) {
	file := content.PagePath(dir, id)
	raw, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return content.PrettifyID(id), nil
		}
		return "", fmt.Errorf("catalog: read %s: %w", file, err)
	}
	front, _, err := content.ParseDocument(raw)
	if err != nil {
		return "", fmt.Errorf("catalog: %s: %w", file, err)
	}
	if front.Title == "" {
		return content.PrettifyID(id), nil
	}
	return front.Title, nil
}

// Store publishes the current Catalog. Rebuilds replace the whole value so
// readers never see a partially updated catalog.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns a Store holding c.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

// Load returns the current catalog.
func (s *Store) Load() *Catalog { return s.current.Load() }

// Swap installs c and returns the previous catalog.
func (s *Store) Swap(c *Catalog) *Catalog { return s.current.Swap(c) }
