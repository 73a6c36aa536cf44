package news

import "context"

// Source identifies the publisher of an article.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a fetched news item. After enrichment Summary is set and, when a
// translation was requested, Title, Summary and Description hold translated
// text. URL is never rewritten.
type Article struct {
	Source      Source `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
	Summary     string `json:"summary"`
}

// FetchResult is what a NewsSource returns. Status "error" marks an upstream
// refusal reported in-band.
type FetchResult struct {
	Status       string
	Articles     []Article
	TotalResults int
	Message      string
}

const StatusError = "error"

// NewsSource pulls fresh articles from an upstream provider.
type NewsSource interface {
	Fetch(ctx context.Context, category, language string, pageSize int) (FetchResult, error)
}

// Summarizer condenses article body text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Translator renders text in the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Request describes one enrichment run.
type Request struct {
	Category       string
	SourceLanguage string
	TargetLanguage string
	PageSize       int
}

// Result is returned instead of an error so callers can tell "no news" from
// an upstream failure via ErrorMessage. Partial is set when the caller's
// context ended before every article was processed.
type Result struct {
	Articles     []Article
	TotalResults int
	ErrorMessage string
	Partial      bool
}
