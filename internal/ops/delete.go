package ops

import (
	"context"

	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID int64

	// Confirm must be true; deletion is the only destructive operation
	Confirm bool
}

// DeleteOutput contains the result of the Delete operation.
// Deleted is false when no note had the id.
type DeleteOutput struct {
	Deleted bool  `json:"deleted"`
	ID      int64 `json:"id"`
}

// Delete permanently removes a note once confirmed.
func Delete(ctx context.Context, st *store.Store, input DeleteInput) (*DeleteOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}
	if !input.Confirm {
		return nil, errors.NewInvalidRequest("deletion must be confirmed")
	}

	_, existed := st.Get(input.ID)
	if err := st.Delete(ctx, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: existed,
		ID:      input.ID,
	}, nil
}
