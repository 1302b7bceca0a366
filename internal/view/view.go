// Package view turns the note list into what a renderer paints: the filtered,
// ordered notes plus a header title and count. It is a pure function of its inputs.
package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hpungsan/jotter/internal/note"
)

// View is the result of ComputeView.
type View struct {
	Notes []note.Note `json:"notes"`
	Title string      `json:"title"`
	Count int         `json:"count"`
}

// ComputeView applies the search query, then the filter, and orders the result.
//
// Search keeps notes whose title or raw content contains query, ignoring case.
// Markup is not stripped before matching. Ordering:
//   - All: pinned first, then LastEdited descending (stable)
//   - Recent: LastEdited descending (stable)
//   - Pinned, Category: input order
//
// The returned slice never aliases notes.
func ComputeView(notes []note.Note, f Filter, query string) View {
	result := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if !Matches(n, query) {
			continue
		}
		switch f.Kind {
		case KindPinned:
			if !n.IsPinned {
				continue
			}
		case KindCategory:
			if n.Category != f.Category {
				continue
			}
		}
		result = append(result, n)
	}

	switch f.Kind {
	case KindAll:
		slices.SortStableFunc(result, pinnedThenRecent)
	case KindRecent:
		slices.SortStableFunc(result, byLastEditedDesc)
	}

	return View{
		Notes: result,
		Title: f.Title(),
		Count: len(result),
	}
}

// Matches reports whether the note's title or content contains query, ignoring case.
// An empty query matches everything.
func Matches(n note.Note, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Content.String()), q)
}

func byLastEditedDesc(a, b note.Note) int {
	return cmp.Compare(b.LastEdited, a.LastEdited)
}

func pinnedThenRecent(a, b note.Note) int {
	if a.IsPinned != b.IsPinned {
		if a.IsPinned {
			return -1
		}
		return 1
	}
	return byLastEditedDesc(a, b)
}
