package conv

import (
	"html"
	"strings"

	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// PlainText strips every tag and collapses whitespace runs into single spaces.
// Text of adjacent elements is concatenated as-is, the way a DOM textContent
// read would.
func PlainText(markup string) string {
	if markup == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(markup))
	return strings.Join(strings.Fields(text), " ")
}

// Readable renders markup as multi-line text, keeping paragraphs, lists and
// link targets. Used for the full view of a single message.
func Readable(markup string) string {
	text, err := html2text.FromString(markup, html2text.Options{
		OmitLinks:    false,
		PrettyTables: true,
	})
	if err != nil {
		return PlainText(markup)
	}
	return strings.TrimSpace(text)
}

// Preview shortens text to at most max runes, marking the cut with an ellipsis.
func Preview(text string, max int) string {
	r := []rune(text)
	if max <= 0 || len(r) <= max {
		return text
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
