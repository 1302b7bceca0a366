package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/jotter/internal/note"
	"github.com/hpungsan/jotter/internal/store"
)

// AddCategoryInput contains parameters for the AddCategory operation.
type AddCategoryInput struct {
	Name string
}

// AddCategoryOutput contains the result of the AddCategory operation.
type AddCategoryOutput struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// AddCategory appends a new category. Duplicate or empty names fail with DUPLICATE_CATEGORY.
func AddCategory(ctx context.Context, st *store.Store, input AddCategoryInput) (*AddCategoryOutput, error) {
	if err := st.AddCategory(ctx, input.Name); err != nil {
		return nil, err
	}
	return &AddCategoryOutput{
		Name:       strings.TrimSpace(input.Name),
		Categories: st.Categories(),
	}, nil
}

// CategoryCount is a sidebar entry.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ListCategoriesOutput contains the result of the ListCategories operation.
type ListCategoriesOutput struct {
	Items []CategoryCount `json:"items"`

	// Uncategorized counts notes filed under no category
	Uncategorized int `json:"uncategorized"`

	// Pinned and Total feed the fixed sidebar entries
	Pinned int `json:"pinned"`
	Total  int `json:"total"`
}

// ListCategories returns the category set in order with per-category note counts.
func ListCategories(st *store.Store) *ListCategoriesOutput {
	counts := make(map[string]int)
	out := &ListCategoriesOutput{}
	for _, n := range st.Notes() {
		counts[n.Category]++
		out.Total++
		if n.IsPinned {
			out.Pinned++
		}
	}

	categories := st.Categories()
	out.Items = make([]CategoryCount, len(categories))
	for i, name := range categories {
		out.Items[i] = CategoryCount{Name: name, Count: counts[name]}
	}
	out.Uncategorized = counts[note.Uncategorized]
	return out
}
