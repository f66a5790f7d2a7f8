package pager

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/docsite/internal/catalog"
)

var abc = []catalog.Entry{
	{ID: "a", Title: "A"},
	{ID: "b", Title: "B"},
	{ID: "c", Title: "C"},
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		flat     []catalog.Entry
		path     string
		wantPrev string
		wantNext string
	}{
		{name: "middle", flat: abc, path: "/b", wantPrev: "a", wantNext: "c"},
		{name: "first", flat: abc, path: "/a", wantNext: "b"},
		{name: "last", flat: abc, path: "/c", wantPrev: "b"},
		{name: "absent", flat: abc, path: "/z"},
		{name: "root", flat: abc, path: "/"},
		{name: "single", flat: abc[:1], path: "/a"},
		{name: "empty list", flat: nil, path: "/a"},
		{name: "two entries first", flat: abc[:2], path: "/a", wantNext: "b"},
		{name: "two entries last", flat: abc[:2], path: "/b", wantPrev: "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := Neighbors(tt.flat, tt.path)
			if tt.wantPrev == "" {
				require.Nil(t, links.Previous)
			} else {
				require.NotNil(t, links.Previous)
				require.Equal(t, tt.wantPrev, links.Previous.ID)
			}
			if tt.wantNext == "" {
				require.Nil(t, links.Next)
			} else {
				require.NotNil(t, links.Next)
				require.Equal(t, tt.wantNext, links.Next.ID)
			}
			require.Equal(t, tt.wantPrev == "" && tt.wantNext == "", links.Empty())
		})
	}
}

func TestNeighborsMiddleEntriesHaveBothSides(t *testing.T) {
	t.Parallel()

	flat := []catalog.Entry{{ID: "p0"}, {ID: "p1"}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"}}
	for i := 1; i < len(flat)-1; i++ {
		links := Neighbors(flat, flat[i].Path())
		require.Equal(t, flat[i-1], *links.Previous)
		require.Equal(t, flat[i+1], *links.Next)
	}
}

func TestNeighborsFirstMatchWins(t *testing.T) {
	t.Parallel()

	flat := []catalog.Entry{{ID: "a"}, {ID: "dup"}, {ID: "b"}, {ID: "dup"}, {ID: "c"}}
	require.Equal(t, 1, Index(flat, "/dup"))

	links := Neighbors(flat, "/dup")
	require.Equal(t, "a", links.Previous.ID)
	require.Equal(t, "b", links.Next.ID)
}

func TestNeighborsReturnsCopies(t *testing.T) {
	t.Parallel()

	flat := []catalog.Entry{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	links := Neighbors(flat, "/a")
	links.Next.Title = "changed"
	require.Equal(t, "B", flat[1].Title)
}

func TestIndexStripsOnlyOneSeparator(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Index(abc, "a"), "a bare id still matches")
	require.Equal(t, -1, Index(abc, "//a"))
}
