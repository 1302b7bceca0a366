package ops

import (
	"slices"
	"strings"

	"github.com/hpungsan/jotter/internal/errors"
	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// validateCategory accepts an empty category (filed as Uncategorized), the
// Uncategorized sentinel, or a member of the category set.
func validateCategory(st *store.Store, category string) error {
	category = strings.TrimSpace(category)
	if category == "" || category == note.Uncategorized {
		return nil
	}
	if !slices.Contains(st.Categories(), category) {
		return errors.NewInvalidRequest("unknown category: " + category + " (add it first)")
	}
	return nil
}

// validateID rejects ids that can never exist.
func validateID(id int64) error {
	if id <= 0 {
		return errors.NewInvalidRequest("id must be a positive integer")
	}
	return nil
}
