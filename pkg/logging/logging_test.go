package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"info":    zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, levelFromString(in), "level %q", in)
	}
}

func TestNew_BuildsBothFormats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "console"} {
		log, err := New("debug", format)
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	}
}
