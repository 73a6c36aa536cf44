package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText lower-cases text, replaces every non letter/digit run with a
// space and collapses whitespace. Used for token comparisons.
func NormalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// CollapseSpaces trims s and folds whitespace runs into single spaces.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
