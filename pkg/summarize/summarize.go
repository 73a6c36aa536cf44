package summarize

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/artem13815/newsdash/pkg/llm"
	"github.com/artem13815/newsdash/pkg/nlp"
)

var ErrEmptyText = errors.New("nothing to summarize")

// LLM asks a chat model for a short neutral summary.
type LLM struct {
	model    llm.ChatModel
	maxChars int
}

func NewLLM(model llm.ChatModel) *LLM {
	return &LLM{model: model, maxChars: 6_000}
}

func (s *LLM) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	text, _ = nlp.Truncate(text, s.maxChars)

	system := "You are a news editor. Summarize the article in two or three sentences. Keep the original language, stay neutral and do not add facts. Reply with the summary only."
	user := fmt.Sprintf("Article text between markers:\n<<<\n%s\n>>>", text)

	answer, err := s.model.Ask(ctx, system, user)
	if err != nil {
		return "", err
	}
	answer = strings.Trim(strings.TrimSpace(answer), "\"")
	if answer == "" {
		return "", errors.New("model returned an empty summary")
	}
	return answer, nil
}

// Extractive picks the highest scoring sentences by word frequency and
// returns them in their original order. It needs no external service.
type Extractive struct {
	MaxSentences int
}

func NewExtractive() Extractive {
	return Extractive{MaxSentences: 2}
}

func (e Extractive) Summarize(_ context.Context, text string) (string, error) {
	sentences := nlp.Sentences(nlp.CollapseSpaces(text))
	if len(sentences) == 0 {
		return "", ErrEmptyText
	}
	limit := e.MaxSentences
	if limit <= 0 {
		limit = 2
	}
	if len(sentences) <= limit {
		return strings.Join(sentences, " "), nil
	}

	words := make([][]string, len(sentences))
	freq := make(map[string]int)
	for i, s := range sentences {
		for _, w := range nlp.Tokens(nlp.NormalizeText(s)) {
			if _, skip := stopwords[w]; skip || len(w) < 2 {
				continue
			}
			words[i] = append(words[i], w)
			freq[w]++
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(sentences))
	for i, ws := range words {
		ranked[i].idx = i
		if len(ws) == 0 {
			continue
		}
		total := 0
		for _, w := range ws {
			total += freq[w]
		}
		ranked[i].score = float64(total) / float64(len(ws))
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	picked := ranked[:limit]
	sort.Slice(picked, func(a, b int) bool { return picked[a].idx < picked[b].idx })
	out := make([]string, 0, limit)
	for _, p := range picked {
		out = append(out, sentences[p.idx])
	}
	return strings.Join(out, " "), nil
}

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {}, "by": {}, "from": {}, "as": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "it": {}, "its": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "he": {}, "she": {}, "they": {},
	"we": {}, "you": {}, "i": {}, "has": {}, "have": {}, "had": {}, "not": {}, "will": {},
	"said": {}, "says": {}, "after": {}, "about": {}, "into": {}, "than": {}, "more": {},
}
