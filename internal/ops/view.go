package ops

import (

	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
	"github.com/hpungsan/jotter/internal/view"
)

// ViewInput contains parameters for the View operation.
type ViewInput struct {
	Filter         string // all | pinned | recent | category:<name>; default all
	Query          string // case-insensitive substring over title and raw content
	IncludeContent bool   // include full notes alongside the card summaries
}

// ViewOutput contains the result of the View operation.
type ViewOutput struct {
	Title  string         `json:"title"`
	Count  int            `json:"count"`
	Filter string         `json:"filter"`
	Query  string         `json:"query,omitempty"`
	Items  []note.Summary `json:"items"`
	Notes  []note.Note    `json:"notes,omitempty"`
}

// View computes the filtered, ordered note list for display.
func View(st *store.Store, input ViewInput) (*ViewOutput, error) {
	f, err := view.ParseFilter(input.Filter)
	if err != nil {
		return nil, err
	}
	// The query is matched as typed; surrounding whitespace is part of it.
	v := view.ComputeView(st.Notes(), f, input.Query)

	items := make([]note.Summary, len(v.Notes))
	for i, n := range v.Notes {
		items[i] = n.ToSummary()
	}

	out := &ViewOutput{
		Title:  v.Title,
		Count:  v.Count,
		Filter: f.String(),
		Query:  input.Query,
		Items:  items,
	}
	if input.IncludeContent {
		out.Notes = v.Notes
	}
	return out, nil
}
