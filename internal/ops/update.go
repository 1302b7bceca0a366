package ops

import (
	"context"

	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// UpdateInput contains parameters for the Update operation.
// All editable fields are replaced, as the editor always submits the full triple.
type UpdateInput struct {
	ID       int64
	Title    string
	Content  string
	Category string
}

// UpdateOutput contains the result of the Update operation.
// Updated is false when no note had the id; that is not an error.
type UpdateOutput struct {
	ID      int64      `json:"id"`
	Updated bool       `json:"updated"`
	Note    *note.Note `json:"note,omitempty"`
}

// Update replaces title, content and category of an existing note.
func Update(ctx context.Context, st *store.Store, input UpdateInput) (*UpdateOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}
	if err := validateCategory(st, input.Category); err != nil {
		return nil, err
	}

	if err := st.Update(ctx, input.ID, input.Title, note.Content(input.Content), input.Category); err != nil {
		return nil, err
	}

	out := &UpdateOutput{ID: input.ID}
	if n, ok := st.Get(input.ID); ok {
		out.Updated = true
		out.Note = &n
	}
	return out, nil
}
