package note

import (
	"strings"
	"time"
)

const (
	// DefaultTitle replaces a blank title at save time.
	DefaultTitle = "Untitled Note"

	// Uncategorized is the sentinel category for notes filed under no category.
	Uncategorized = "Uncategorized"
)

// DefaultCategories seeds the category set on first run.
var DefaultCategories = []string{"Ideas", "Study", "Personal", "Startup"}

// Note is a user-authored record with rich content, a category, a pin flag and timestamps.
type Note struct {
	// ID is the creation timestamp in milliseconds, bumped on collision so it stays unique
	ID int64 `json:"id"`

	Title   string  `json:"title"`
	Content Content `json:"content"`

	// Category names an entry in the category set, or Uncategorized
	Category string `json:"category"`

	IsPinned bool `json:"isPinned"`

	// CreatedAt and LastEdited are milliseconds since epoch; LastEdited >= CreatedAt
	CreatedAt  int64 `json:"createdAt"`
	LastEdited int64 `json:"lastEdited"`
}

// ResolveTitle trims a title and substitutes DefaultTitle when nothing is left.
func ResolveTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

// ResolveCategory trims a category and substitutes Uncategorized when nothing is left.
func ResolveCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return Uncategorized
	}
	return category
}

// FormatDate formats a millisecond timestamp as "2006-01-02 15:04" UTC.
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}

// Clone returns a copy of the slice so callers never alias store-owned state.
func Clone(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}
