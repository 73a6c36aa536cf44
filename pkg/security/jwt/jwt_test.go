package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/newsdash/pkg/auth"
)

func TestGenerator_IssueParse(t *testing.T) {
	t.Parallel()

	g := NewGenerator("secret", "newsdash", time.Hour)
	ident := auth.Identity{ID: "a@b.com", Email: "a@b.com", DisplayName: "a"}

	token, exp, err := g.Issue(context.Background(), "sid-1", ident)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	sid, err := g.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
}

func TestGenerator_ParseRejects(t *testing.T) {
	t.Parallel()

	ident := auth.Identity{ID: "a@b.com"}
	g := NewGenerator("secret", "newsdash", time.Hour)
	token, _, err := g.Issue(context.Background(), "sid", ident)
	require.NoError(t, err)

	_, err = NewGenerator("other-secret", "newsdash", time.Hour).Parse(token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated, "wrong secret")

	_, err = NewGenerator("secret", "someone-else", time.Hour).Parse(token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated, "wrong issuer")

	_, err = g.Parse("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrUnauthenticated, "garbage")

	expired := NewGenerator("secret", "newsdash", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(context.Background(), "sid", ident)
	require.NoError(t, err)
	_, err = g.Parse(old)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated, "expired")
}
