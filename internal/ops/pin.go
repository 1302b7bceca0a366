package ops

import (
	"context"

	"github.com/hpungsan/jotter/internal/store"
)

// TogglePinInput contains parameters for the TogglePin operation.
type TogglePinInput struct {
	ID int64
}

// TogglePinOutput contains the result of the TogglePin operation.
type TogglePinOutput struct {
	ID       int64 `json:"id"`
	Found    bool  `json:"found"`
	IsPinned bool  `json:"isPinned"`
}

// TogglePin flips the pinned flag of a note.
func TogglePin(ctx context.Context, st *store.Store, input TogglePinInput) (*TogglePinOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}
	if err := st.TogglePin(ctx, input.ID); err != nil {
		return nil, err
	}

	out := &TogglePinOutput{ID: input.ID}
	if n, ok := st.Get(input.ID); ok {
		out.Found = true
		out.IsPinned = n.IsPinned
	}
	return out, nil
}
