package news

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/artem13815/newsdash/pkg/upstream"
)

// CallPolicy bounds a single collaborator call and its retries.
type CallPolicy struct {
	Timeout time.Duration
	Retries uint64
	Backoff time.Duration
}

// DefaultPolicy allows one retry for transient failures.
func DefaultPolicy(timeout time.Duration) CallPolicy {
	return CallPolicy{Timeout: timeout, Retries: 1, Backoff: 200 * time.Millisecond}
}

func (p CallPolicy) do(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(p.Retries, retry.NewConstant(p.Backoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		callCtx := ctx
		if p.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.Timeout)
			defer cancel()
		}

		err := fn(callCtx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			// the caller gave up; do not spend the retry budget
			return err
		}
		if upstream.IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

type resilientSource struct {
	next   NewsSource
	policy CallPolicy
}

// NewResilientSource wraps a NewsSource with timeout and retry handling.
func NewResilientSource(next NewsSource, policy CallPolicy) NewsSource {
	return &resilientSource{next: next, policy: policy}
}

func (r *resilientSource) Fetch(ctx context.Context, category, language string, pageSize int) (FetchResult, error) {
	var out FetchResult
	err := r.policy.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.Fetch(ctx, category, language, pageSize)
		return err
	})
	return out, err
}

type resilientSummarizer struct {
	next   Summarizer
	policy CallPolicy
}

func NewResilientSummarizer(next Summarizer, policy CallPolicy) Summarizer {
	return &resilientSummarizer{next: next, policy: policy}
}

func (r *resilientSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	var out string
	err := r.policy.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.Summarize(ctx, text)
		return err
	})
	return out, err
}

type resilientTranslator struct {
	next   Translator
	policy CallPolicy
}

func NewResilientTranslator(next Translator, policy CallPolicy) Translator {
	return &resilientTranslator{next: next, policy: policy}
}

func (r *resilientTranslator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	var out string
	err := r.policy.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.next.Translate(ctx, text, targetLanguage)
		return err
	})
	return out, err
}
