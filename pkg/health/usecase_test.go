package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                  { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReady(t *testing.T) {
	require.NoError(t, NewService().Ready(context.Background()))

	down := errors.New("connection refused")
	svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "redis", err: down})
	err := svc.Ready(context.Background())
	require.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "redis")

	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "connection refused"}, svc.Report(context.Background()))
}
