package nlp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokens splits a normalized text into words, keeping order and duplicates.
func Tokens(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// Sentences splits text after '.', '!' or '?' followed by whitespace.
func Sentences(text string) []string {
	text = CollapseSpaces(text)
	var (
		out   []string
		start int
	)
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + utf8.RuneLen(r)
		if next < len(text) {
			nr, _ := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(nr) {
				continue
			}
		}
		if s := strings.TrimSpace(text[start:next]); s != "" {
			out = append(out, s)
		}
		start = next
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

// Truncate shortens s to at most max runes, preferring a word boundary, and
// reports whether anything was cut.
func Truncate(s string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}
	runes := []rune(s)
	cut := string(runes[:max])
	if i := strings.LastIndexFunc(cut, unicode.IsSpace); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut), true
}
