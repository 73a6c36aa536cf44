package news

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artem13815/newsdash/pkg/nlp"
)

const (
	defaultMessage      = "No articles found"
	defaultConcurrency  = 4
	defaultMaxBodyChars = 4000
)

// Options tune the pipeline. Zero values pick defaults.
type Options struct {
	Concurrency  int
	MaxBodyChars int
	Logger       *zap.Logger
}

// Pipeline implements fetch → summarize → translate.
type Pipeline struct {
	source       NewsSource
	summarizer   Summarizer
	translator   Translator
	concurrency  int
	maxBodyChars int
	log          *zap.Logger
}

// NewPipeline wires collaborators. summarizer and translator may be nil, in
// which case the step keeps the original text.
func NewPipeline(source NewsSource, summarizer Summarizer, translator Translator, opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.MaxBodyChars <= 0 {
		opts.MaxBodyChars = defaultMaxBodyChars
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{
		source:       source,
		summarizer:   summarizer,
		translator:   translator,
		concurrency:  opts.Concurrency,
		maxBodyChars: opts.MaxBodyChars,
		log:          opts.Logger,
	}
}

// Enrich never fails: upstream problems are reported in Result.ErrorMessage
// and per-article problems degrade that article only. Output order is the
// order returned by the NewsSource.
func (p *Pipeline) Enrich(ctx context.Context, req Request) Result {
	fetched, err := p.source.Fetch(ctx, req.Category, req.SourceLanguage, req.PageSize)
	if err != nil {
		p.log.Warn("news fetch failed",
			zap.String("category", req.Category),
			zap.String("language", req.SourceLanguage),
			zap.Error(err),
		)
		return Result{Articles: []Article{}, ErrorMessage: err.Error()}
	}
	if fetched.Status == StatusError || len(fetched.Articles) == 0 {
		msg := strings.TrimSpace(fetched.Message)
		if msg == "" {
			msg = defaultMessage
		}
		return Result{Articles: []Article{}, ErrorMessage: msg}
	}

	translate := p.translator != nil &&
		req.TargetLanguage != "" &&
		!strings.EqualFold(req.TargetLanguage, req.SourceLanguage)

	slots := make([]Article, len(fetched.Articles))
	done := make([]bool, len(fetched.Articles))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, article := range fetched.Articles {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out := p.enrichOne(ctx, article, req.TargetLanguage, translate)
			if ctx.Err() == nil {
				slots[i] = out
				done[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	// only the leading run of completed slots is returned
	articles := make([]Article, 0, len(slots))
	for i, ok := range done {
		if !ok {
			break
		}
		articles = append(articles, slots[i])
	}
	res := Result{Articles: articles, TotalResults: fetched.TotalResults}
	if len(articles) < len(fetched.Articles) {
		res.Partial = true
		p.log.Info("enrichment cut short",
			zap.Int("completed", len(articles)),
			zap.Int("fetched", len(fetched.Articles)),
			zap.Error(ctx.Err()),
		)
	}
	return res
}

func (p *Pipeline) enrichOne(ctx context.Context, a Article, target string, translate bool) Article {
	a.Summary = a.Description
	if p.summarizer != nil {
		body := nlp.StripHTML(a.Content)
		if body == "" {
			body = nlp.StripHTML(a.Description)
		}
		if body != "" {
			body, _ = nlp.Truncate(body, p.maxBodyChars)
			summary, err := p.summarizer.Summarize(ctx, body)
			switch {
			case err != nil:
				p.log.Debug("summarize failed, keeping description", zap.String("url", a.URL), zap.Error(err))
			case strings.TrimSpace(summary) != "":
				a.Summary = strings.TrimSpace(summary)
			}
		}
	}
	if translate {
		a.Title = p.translate(ctx, a.URL, a.Title, target)
		a.Summary = p.translate(ctx, a.URL, a.Summary, target)
		a.Description = p.translate(ctx, a.URL, a.Description, target)
	}
	return a
}

func (p *Pipeline) translate(ctx context.Context, url, text, target string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	out, err := p.translator.Translate(ctx, text, target)
	if err != nil || strings.TrimSpace(out) == "" {
		p.log.Debug("translate failed, keeping original", zap.String("url", url), zap.Error(err))
		return text
	}
	return out
}
