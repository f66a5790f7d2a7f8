// Package pager computes the previous/next links shown under a docs page.
package pager

import (
	"strings"

	"finitefield.org/docsite/internal/catalog"
)

// Links holds the neighbours of the current page in reading order. A nil
// field means there is no such neighbour.
type Links struct {
	Previous *catalog.Entry
	Next     *catalog.Entry
}

// Empty reports whether there is nothing to render.
func (l Links) Empty() bool { return l.Previous == nil && l.Next == nil }

// Neighbors finds currentPath in flat and returns the entries on either side.
// The first matching entry wins; a path that matches nothing has no
// neighbours.
func Neighbors(flat []catalog.Entry, currentPath string) Links {
	i := Index(flat, currentPath)
	if i < 0 {
		return Links{}
	}
	var links Links
	if i > 0 {
		prev := flat[i-1]
		links.Previous = &prev
	}
	if i+1 < len(flat) {
		next := flat[i+1]
		links.Next = &next
	}
	return links
}

// Index returns the position of the first entry whose id equals currentPath
// without its leading "/", or -1.
func Index(flat []catalog.Entry, currentPath string) int {
	id := strings.TrimPrefix(currentPath, "/")
	for i, e := range flat {
		if e.ID == id {
			return i
		}
	}
	return -1
}
