package news_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/newsdash/pkg/news"
	"github.com/artem13815/newsdash/pkg/upstream"
)

var fastPolicy = news.CallPolicy{Timeout: 50 * time.Millisecond, Retries: 1, Backoff: time.Millisecond}

func TestResilient_RetriesTransientOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := summarizerFunc(func(context.Context, string) (string, error) {
		if calls.Add(1) == 1 {
			return "", &upstream.Error{Service: "llm", Status: http.StatusBadGateway}
		}
		return "ok", nil
	})

	out, err := news.NewResilientSummarizer(inner, fastPolicy).Summarize(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.EqualValues(t, 2, calls.Load())
}

func TestResilient_GivesUpAfterOneRetry(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := translatorFunc(func(context.Context, string, string) (string, error) {
		calls.Add(1)
		return "", &upstream.Error{Service: "translate", Status: http.StatusTooManyRequests}
	})

	_, err := news.NewResilientTranslator(inner, fastPolicy).Translate(context.Background(), "hi", "fr")
	var ue *upstream.Error
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusTooManyRequests, ue.Status)
	assert.EqualValues(t, 2, calls.Load())
}

func TestResilient_DoesNotRetryAuthFailures(t *testing.T) {
	t.Parallel()

	src := &fakeSource{err: &upstream.Error{Service: "newsapi", Status: http.StatusUnauthorized}}

	_, err := news.NewResilientSource(src, fastPolicy).Fetch(context.Background(), "general", "en", 20)
	require.Error(t, err)
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestResilient_PerCallTimeoutIsRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	inner := summarizerFunc(func(ctx context.Context, _ string) (string, error) {
		calls.Add(1)
		<-ctx.Done()
		return "", ctx.Err()
	})
	policy := news.CallPolicy{Timeout: 10 * time.Millisecond, Retries: 1, Backoff: time.Millisecond}

	_, err := news.NewResilientSummarizer(inner, policy).Summarize(context.Background(), "text")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualValues(t, 2, calls.Load())
}

func TestResilient_CallerCancellationStopsRetries(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	inner := summarizerFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		cancel()
		return "", &upstream.Error{Service: "llm", Status: http.StatusServiceUnavailable}
	})

	_, err := news.NewResilientSummarizer(inner, fastPolicy).Summarize(ctx, "text")
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}
