package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "go 1 26 ships today", NormalizeText("  Go 1.26 — ships TODAY!! "))
	assert.Equal(t, "привет мир", NormalizeText("Привет, мир"))
	assert.Equal(t, []string{"a", "b", "a"}, Tokens("a b a"))
	assert.Nil(t, Tokens(""))
}

func TestSentences(t *testing.T) {
	t.Parallel()
	got := Sentences("First one. Second?  Third!\nVersion 1.2 is out. tail")
	assert.Equal(t, []string{"First one.", "Second?", "Third!", "Version 1.2 is out.", "tail"}, got)
	assert.Empty(t, Sentences("   "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	s, cut := Truncate("short", 10)
	assert.Equal(t, "short", s)
	assert.False(t, cut)

	s, cut = Truncate("the quick brown fox jumps", 12)
	assert.True(t, cut)
	assert.Equal(t, "the quick", s)

	s, cut = Truncate("ééééé", 3)
	assert.True(t, cut)
	assert.Equal(t, "ééé", s)

	// the only space sits in the first half of the cut, so no word-boundary backoff
	s, cut = Truncate("éééé abcdefghijk", 12)
	assert.True(t, cut)
	assert.Equal(t, "éééé abcdefg", s)
}

func TestStripHTML(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "plain text", StripHTML(" plain \n text "))
	assert.Equal(t, "Hello world & friends", StripHTML(`<p>Hello <b>world</b> &amp; friends</p><script>alert(1)</script>`))
}
