package ops

import (
	"context"

	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Title    string // blank → "Untitled Note"
	Content  string // opaque markup, stored verbatim
	Category string // blank → "Uncategorized"
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	Note note.Note `json:"note"`
}

// Create saves a new note.
func Create(ctx context.Context, st *store.Store, input CreateInput) (*CreateOutput, error) {
	if err := validateCategory(st, input.Category); err != nil {
		return nil, err
	}

	n, err := st.Create(ctx, input.Title, note.Content(input.Content), input.Category)
	if err != nil {
		return nil, err
	}

	return &CreateOutput{Note: n}, nil
}
