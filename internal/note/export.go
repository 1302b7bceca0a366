package note

import (
	"fmt"
	"strings"
)

// ExportRecord is what the export collaborator receives for a single note.
type ExportRecord struct {
	Title string `json:"title"`

	// Body is the markup or its plain-text rendering, depending on the export kind
	Body string `json:"body"`

	// Date is the formatted last-edited timestamp
	Date string `json:"date"`
}

// ToExportRecord builds an ExportRecord from a note.
func ToExportRecord(n Note, plain bool) ExportRecord {
	body := n.Content.String()
	if plain {
		body = n.Content.PlainText()
	}
	return ExportRecord{
		Title: n.Title,
		Body:  body,
		Date:  FormatDate(n.LastEdited),
	}
}

// Text renders the record as a plain text document.
func (r ExportRecord) Text() string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Last edited: %s\n", r.Date)
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")
	b.WriteString(r.Body)
	b.WriteString("\n")
	return b.String()
}
