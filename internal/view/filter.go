package view

import (
	"fmt"
	"strings"

	"github.com/hpungsan/jotter/internal/errors"
)

// Kind selects which notes a view shows.
type Kind int

const (
	KindAll Kind = iota
	KindPinned
	KindRecent
	KindCategory
)

// Filter is a view selector. Category is only meaningful for KindCategory.
type Filter struct {
	Kind     Kind
	Category string
}

// All, Pinned and Recent are the fixed filters.
var (
	All    = Filter{Kind: KindAll}
	Pinned = Filter{Kind: KindPinned}
	Recent = Filter{Kind: KindRecent}
)

// Category returns the filter for one category.
func Category(name string) Filter {
	return Filter{Kind: KindCategory, Category: name}
}

const categoryPrefix = "category:"

// ParseFilter parses "all", "pinned", "recent" or "category:<name>".
// The empty string means All. Keywords are case-insensitive; category names are not.
func ParseFilter(s string) (Filter, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "", "all":
		return All, nil
	case "pinned":
		return Pinned, nil
	case "recent":
		return Recent, nil
	}

	if len(trimmed) >= len(categoryPrefix) && strings.EqualFold(trimmed[:len(categoryPrefix)], categoryPrefix) {
		name := strings.TrimSpace(trimmed[len(categoryPrefix):])
		if name == "" {
			return Filter{}, errors.NewInvalidRequest("category filter needs a name, e.g. category:Ideas")
		}
		return Category(name), nil
	}

	return Filter{}, errors.NewInvalidRequest(fmt.Sprintf("unknown filter %q (want all, pinned, recent or category:<name>)", s))
}

// String renders the filter in the form ParseFilter accepts.
func (f Filter) String() string {
	switch f.Kind {
	case KindPinned:
		return "pinned"
	case KindRecent:
		return "recent"
	case KindCategory:
		return categoryPrefix + f.Category
	}
	return "all"
}

// Title is the header shown above the notes of this view.
func (f Filter) Title() string {
	switch f.Kind {
	case KindPinned:
		return "Pinned Notes"
	case KindRecent:
		return "Recently Edited"
	case KindCategory:
		return f.Category + " Notes"
	}
	return "All Notes"
}
