package note

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Content is the rich-text document of a note, kept as an opaque markup blob.
// The engine stores and forwards it verbatim; only the export path looks inside.
type Content string

// String returns the raw markup.
func (c Content) String() string {
	return string(c)
}

var (
	// blockBreakRegex matches tags that end a line of text in the editor's markup
	blockBreakRegex = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|blockquote|pre)>`)

	// tagRegex matches any remaining tag
	tagRegex = regexp.MustCompile(`<[^>]*>`)

	// blankLinesRegex matches runs of blank lines
	blankLinesRegex = regexp.MustCompile(`\n[ \t]*\n(\s*\n)+`)
)

// PlainText strips markup and decodes entities.
// Used by the export path only; search always matches the raw markup.
func (c Content) PlainText() string {
	s := blockBreakRegex.ReplaceAllString(string(c), "\n")
	s = tagRegex.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = blankLinesRegex.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// Preview returns up to maxChars runes of plain text, with "..." when cut.
func (c Content) Preview(maxChars int) string {
	text := strings.Join(strings.Fields(c.PlainText()), " ")
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxChars])) + "..."
}
