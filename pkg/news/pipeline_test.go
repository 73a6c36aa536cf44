package news_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/artem13815/newsdash/pkg/news"
	"github.com/artem13815/newsdash/pkg/upstream"
)

type fakeSource struct {
	res   news.FetchResult
	err   error
	calls atomic.Int32
}

func (f *fakeSource) Fetch(context.Context, string, string, int) (news.FetchResult, error) {
	f.calls.Add(1)
	return f.res, f.err
}

type summarizerFunc func(ctx context.Context, text string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

type translatorFunc func(ctx context.Context, text, target string) (string, error)

func (f translatorFunc) Translate(ctx context.Context, text, target string) (string, error) {
	return f(ctx, text, target)
}

func articles(n int) []news.Article {
	out := make([]news.Article, n)
	for i := range out {
		out[i] = news.Article{
			Title:       fmt.Sprintf("title %d", i),
			Description: fmt.Sprintf("description %d", i),
			Content:     fmt.Sprintf("<p>body %d</p>", i),
			URL:         fmt.Sprintf("https://example.com/%d", i),
		}
	}
	return out
}

func okSource(n int) *fakeSource {
	return &fakeSource{res: news.FetchResult{Status: "ok", Articles: articles(n), TotalResults: 100}}
}

var upperSummary = summarizerFunc(func(_ context.Context, text string) (string, error) {
	return "summary of " + text, nil
})

func TestEnrich_SameLanguageSkipsTranslation(t *testing.T) {
	t.Parallel()

	var translations atomic.Int32
	tr := translatorFunc(func(_ context.Context, text, _ string) (string, error) {
		translations.Add(1)
		return "x" + text, nil
	})
	p := news.NewPipeline(okSource(3), upperSummary, tr, news.Options{Logger: zaptest.NewLogger(t)})

	res := p.Enrich(context.Background(), news.Request{Category: "technology", SourceLanguage: "en", TargetLanguage: "EN"})

	require.Len(t, res.Articles, 3)
	assert.Empty(t, res.ErrorMessage)
	assert.False(t, res.Partial)
	assert.Equal(t, 100, res.TotalResults)
	assert.Zero(t, translations.Load())
	for i, a := range res.Articles {
		assert.Equal(t, fmt.Sprintf("title %d", i), a.Title)
		assert.Equal(t, fmt.Sprintf("summary of body %d", i), a.Summary)
	}
}

func TestEnrich_SummaryFallsBackToDescription(t *testing.T) {
	t.Parallel()

	failing := summarizerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("model unavailable")
	})
	p := news.NewPipeline(okSource(2), failing, nil, news.Options{Logger: zaptest.NewLogger(t)})

	res := p.Enrich(context.Background(), news.Request{SourceLanguage: "en"})

	require.Len(t, res.Articles, 2)
	for _, a := range res.Articles {
		assert.Equal(t, a.Description, a.Summary)
	}
}

func TestEnrich_OneSummarizerFailureDegradesOnlyThatArticle(t *testing.T) {
	t.Parallel()

	sum := summarizerFunc(func(_ context.Context, text string) (string, error) {
		if text == "body 1" {
			return "", errors.New("model unavailable")
		}
		return "summary of " + text, nil
	})
	p := news.NewPipeline(okSource(3), sum, nil, news.Options{Concurrency: 3, Logger: zaptest.NewLogger(t)})

	res := p.Enrich(context.Background(), news.Request{SourceLanguage: "en"})

	require.Len(t, res.Articles, 3)
	assert.False(t, res.Partial)
	assert.Equal(t, "summary of body 0", res.Articles[0].Summary)
	assert.Equal(t, "description 1", res.Articles[1].Summary)
	assert.Equal(t, "summary of body 2", res.Articles[2].Summary)
}

func TestEnrich_TranslationFailureIsPerField(t *testing.T) {
	t.Parallel()

	tr := translatorFunc(func(_ context.Context, text, target string) (string, error) {
		if text == "title 1" {
			return "", errors.New("quota")
		}
		return "[" + target + "] " + text, nil
	})
	p := news.NewPipeline(okSource(2), upperSummary, tr, news.Options{Logger: zaptest.NewLogger(t)})

	res := p.Enrich(context.Background(), news.Request{SourceLanguage: "en", TargetLanguage: "fr"})

	require.Len(t, res.Articles, 2)
	assert.Equal(t, "[fr] title 0", res.Articles[0].Title)
	assert.Equal(t, "[fr] summary of body 0", res.Articles[0].Summary)
	assert.Equal(t, "[fr] description 0", res.Articles[0].Description)

	assert.Equal(t, "title 1", res.Articles[1].Title)
	assert.Equal(t, "[fr] summary of body 1", res.Articles[1].Summary)
	assert.Equal(t, "[fr] description 1", res.Articles[1].Description)
	assert.Equal(t, "https://example.com/1", res.Articles[1].URL)
}

func TestEnrich_PreservesSourceOrder(t *testing.T) {
	t.Parallel()

	// earlier articles finish last
	slow := summarizerFunc(func(_ context.Context, text string) (string, error) {
		var i int
		_, _ = fmt.Sscanf(text, "body %d", &i)
		time.Sleep(time.Duration(8-i) * 3 * time.Millisecond)
		return text, nil
	})
	p := news.NewPipeline(okSource(8), slow, nil, news.Options{Concurrency: 8, Logger: zaptest.NewLogger(t)})

	res := p.Enrich(context.Background(), news.Request{SourceLanguage: "en"})

	require.Len(t, res.Articles, 8)
	for i, a := range res.Articles {
		assert.Equal(t, fmt.Sprintf("https://example.com/%d", i), a.URL)
	}
}

func TestEnrich_EmptyAndErrorFetches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  *fakeSource
		want string
	}{
		{"no articles", &fakeSource{res: news.FetchResult{Status: "ok"}}, "No articles found"},
		{"in-band error", &fakeSource{res: news.FetchResult{Status: news.StatusError, Message: "apiKeyInvalid"}}, "apiKeyInvalid"},
		{"in-band error without message", &fakeSource{res: news.FetchResult{Status: news.StatusError}}, "No articles found"},
		{"transport error", &fakeSource{err: &upstream.Error{Service: "newsapi", Status: 503}}, "newsapi: http 503"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := news.NewPipeline(tc.src, upperSummary, nil, news.Options{Logger: zaptest.NewLogger(t)})
			res := p.Enrich(context.Background(), news.Request{SourceLanguage: "en"})
			assert.NotNil(t, res.Articles)
			assert.Empty(t, res.Articles)
			assert.Equal(t, tc.want, res.ErrorMessage)
		})
	}
}

func TestEnrich_CancellationReturnsCompletedPrefix(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sum := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		if strings.HasPrefix(text, "body 2") {
			cancel()
			<-ctx.Done()
			return "", ctx.Err()
		}
		return text, nil
	})
	p := news.NewPipeline(okSource(5), sum, nil, news.Options{Concurrency: 1, Logger: zaptest.NewLogger(t)})

	res := p.Enrich(ctx, news.Request{SourceLanguage: "en"})

	assert.True(t, res.Partial)
	require.Len(t, res.Articles, 2)
	assert.Equal(t, "https://example.com/0", res.Articles[0].URL)
	assert.Equal(t, "https://example.com/1", res.Articles[1].URL)
}

func TestEnrich_ArticleWithoutBodyKeepsDescription(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	sum := summarizerFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		return "never", nil
	})
	src := &fakeSource{res: news.FetchResult{Status: "ok", Articles: []news.Article{{Title: "t", URL: "u"}}}}
	p := news.NewPipeline(src, sum, nil, news.Options{Logger: zaptest.NewLogger(t)})

	res := p.Enrich(context.Background(), news.Request{SourceLanguage: "en"})

	require.Len(t, res.Articles, 1)
	assert.Empty(t, res.Articles[0].Summary)
	assert.Zero(t, calls.Load())
}

func TestEnrich_ConcurrentCancellationKeepsOnlyLeadingRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// with two workers: 0 finishes, 1 hangs, 2 finishes, 3 cancels
	sum := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		switch {
		case strings.HasPrefix(text, "body 1"):
			<-ctx.Done()
			return "", ctx.Err()
		case strings.HasPrefix(text, "body 3"):
			cancel()
			return "", ctx.Err()
		}
		return text, nil
	})
	p := news.NewPipeline(okSource(5), sum, nil, news.Options{Concurrency: 2, Logger: zaptest.NewLogger(t)})

	res := p.Enrich(ctx, news.Request{SourceLanguage: "en"})

	assert.True(t, res.Partial)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "https://example.com/0", res.Articles[0].URL)
}

func TestEnrich_SlowFirstArticleYieldsEmptyPartial(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sum := summarizerFunc(func(ctx context.Context, text string) (string, error) {
		switch {
		case strings.HasPrefix(text, "body 0"):
			<-ctx.Done()
			return "", ctx.Err()
		case strings.HasPrefix(text, "body 2"):
			cancel()
			return "", ctx.Err()
		}
		return text, nil
	})
	p := news.NewPipeline(okSource(3), sum, nil, news.Options{Concurrency: 2, Logger: zaptest.NewLogger(t)})

	res := p.Enrich(ctx, news.Request{SourceLanguage: "en"})

	assert.True(t, res.Partial)
	assert.NotNil(t, res.Articles)
	assert.Empty(t, res.Articles)
}
