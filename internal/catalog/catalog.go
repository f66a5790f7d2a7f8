// Package catalog holds the route lists the docs shell is built from: the
// sections shown in the sidebar and the flattened reading order used for
// previous/next pagination.
package catalog

import (
	"errors"
	"fmt"
)

// Entry identifies one docs page. ID doubles as URL slug and list key.
type Entry struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Path returns the page's URL path.
func (e Entry) Path() string { return "/" + e.ID }

// Section groups entries under a sidebar heading.
type Section struct {
	Label string
	Pages []Entry
}

// Link is an external community link listed after all sections.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// DefaultCommunity is used when the manifest lists no community links.
var DefaultCommunity = []Link{
	{Label: "GitHub", Href: "https://github.com/modulz/stitches"},
	{Label: "Twitter", Href: "https://twitter.com/stitchesjs"},
}

// Catalog is immutable once built; accessors return copies.
type Catalog struct {
	sections  []Section
	flat      []Entry
	community []Link
}

// New builds a Catalog from the given values. Inputs are copied.
func New(sections []Section, flat []Entry, community []Link) *Catalog {
	c := &Catalog{
		sections:  make([]Section, len(sections)),
		flat:      append([]Entry(nil), flat...),
		community: append([]Link(nil), community...),
	}
	for i, s := range sections {
		c.sections[i] = Section{Label: s.Label, Pages: append([]Entry(nil), s.Pages...)}
	}
	return c
}

// Sections returns the sidebar grouping in insertion order.
func (c *Catalog) Sections() []Section {
	if c == nil {
		return nil
	}
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = Section{Label: s.Label, Pages: append([]Entry(nil), s.Pages...)}
	}
	return out
}

// Flat returns the canonical reading order.
func (c *Catalog) Flat() []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.flat...)
}

// Community returns the external links appended to the sidebar.
func (c *Catalog) Community() []Link {
	if c == nil {
		return nil
	}
	return append([]Link(nil), c.community...)
}

// Lookup finds the first entry with id, searching the flat list then sections.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	for _, e := range c.flat {
		if e.ID == id {
			return e, true
		}
	}
	for _, s := range c.sections {
		for _, e := range s.Pages {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// SectionOf returns the label of the first section listing id.
func (c *Catalog) SectionOf(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	for _, s := range c.sections {
		for _, e := range s.Pages {
			if e.ID == id {
				return s.Label, true
			}
		}
	}
	return "", false
}

// Validate reports content-authoring defects: ids present in only one of the
// two lists and ids repeated within a list. A nil error means the sidebar and
// the pagination order agree.
func (c *Catalog) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error

	inSections := map[string]int{}
	var sectionOrder []string
	for _, s := range c.sections {
		for _, e := range s.Pages {
			if inSections[e.ID] == 0 {
				sectionOrder = append(sectionOrder, e.ID)
			}
			inSections[e.ID]++
		}
	}
	inFlat := map[string]int{}
	var flatOrder []string
	for _, e := range c.flat {
		if inFlat[e.ID] == 0 {
			flatOrder = append(flatOrder, e.ID)
		}
		inFlat[e.ID]++
	}

	for _, id := range sectionOrder {
		if n := inSections[id]; n > 1 {
			errs = append(errs, fmt.Errorf("%w: %q listed %d times in sections", ErrDuplicateID, id, n))
		}
		if inFlat[id] == 0 {
			errs = append(errs, fmt.Errorf("%w: %q is in a section but not in the reading order", ErrMembership, id))
		}
	}
	for _, id := range flatOrder {
		if n := inFlat[id]; n > 1 {
			errs = append(errs, fmt.Errorf("%w: %q listed %d times in the reading order", ErrDuplicateID, id, n))
		}
		if inSections[id] == 0 {
			errs = append(errs, fmt.Errorf("%w: %q is in the reading order but in no section", ErrMembership, id))
		}
	}
	return errors.Join(errs...)
}

var (
	// ErrMembership marks an id missing from one of the two route lists.
	ErrMembership = errors.New("catalog: membership mismatch")
	// ErrDuplicateID marks an id listed more than once.
	ErrDuplicateID = errors.New("catalog: duplicate id")
	// ErrManifest wraps manifest read and parse failures.
	ErrManifest = errors.New("catalog: manifest")
)
