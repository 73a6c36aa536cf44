package nlp

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML returns the visible text of an HTML fragment. Plain text passes
// through with whitespace collapsed.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return CollapseSpaces(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return CollapseSpaces(s)
	}
	doc.Find("script, style, noscript").Remove()
	return CollapseSpaces(doc.Text())
}
