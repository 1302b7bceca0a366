package ops

import (
	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	ID int64
}

// GetOutput is what the editor receives when a note is opened.
type GetOutput struct {
	note.Note
	LastEditedText string `json:"lastEditedText"`
}

// Get returns a single note. Unlike the store mutations, a missing note is
// NOT_FOUND here because the caller has nothing to show.
func Get(st *store.Store, input GetInput) (*GetOutput, error) {
	if err := validateID(input.ID); err != nil {
		return nil, err
	}
	n, ok := st.Get(input.ID)
	if !ok {
		return nil, errors.NewNotFound(input.ID)
	}
	return &GetOutput{
		Note:           n,
		LastEditedText: note.FormatDate(n.LastEdited),
	}, nil
}
