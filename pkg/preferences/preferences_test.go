package preferences_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/newsdash/pkg/preferences"
	"github.com/artem13815/newsdash/pkg/repository/memory"
)

func TestPreferences_SaveAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := preferences.NewService(memory.NewPreferencesRepository())

	got, err := svc.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(got))

	saved, err := svc.Save(ctx, "a@b.com", json.RawMessage(` {"category":"technology","language":"de"} `))
	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"technology","language":"de"}`, string(saved))

	got, err = svc.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.JSONEq(t, string(saved), string(got))

	other, err := svc.Get(ctx, "c@d.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(other))
}

func TestPreferences_RejectsNonObjects(t *testing.T) {
	t.Parallel()
	svc := preferences.NewService(memory.NewPreferencesRepository())

	for _, in := range []string{``, `[]`, `"dark"`, `{"broken":`} {
		_, err := svc.Save(context.Background(), "a@b.com", json.RawMessage(in))
		assert.ErrorIs(t, err, preferences.ErrValidation, "input %q", in)
	}
}
