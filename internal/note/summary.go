package note

// PreviewChars is the length of the content preview shown on note cards.
const PreviewChars = 150

// Summary represents a note card: metadata plus a short plain-text preview.
// Used by list views to avoid shipping full content.
type Summary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	IsPinned   bool   `json:"isPinned"`
	Preview    string `json:"preview"`
	CreatedAt  int64  `json:"createdAt"`
	LastEdited int64  `json:"lastEdited"`
}

// ToSummary converts a Note to a Summary.
func (n Note) ToSummary() Summary {
	return Summary{
		ID:         n.ID,
		Title:      n.Title,
		Category:   n.Category,
		IsPinned:   n.IsPinned,
		Preview:    n.Content.Preview(PreviewChars),
		CreatedAt:  n.CreatedAt,
		LastEdited: n.LastEdited,
	}
}
