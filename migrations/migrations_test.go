package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsOrderedGooseFiles(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_users.sql", "00002_shared_articles.sql", "00003_preferences.sql"}, names)

	for _, name := range names {
		raw, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.HasPrefix(body, "-- +goose Up"), name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}
