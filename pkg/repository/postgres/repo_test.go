package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/newsdash/pkg/auth"
	"github.com/artem13815/newsdash/pkg/preferences"
	"github.com/artem13815/newsdash/pkg/share"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestUserRepository_Create_OK_and_UniqueViolation(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	u := auth.User{ID: "ann@example.com", Email: "ann@example.com", DisplayName: "ann", PasswordHash: "h", CreatedAt: now}

	mock.ExpectExec(`INSERT INTO users \(id,email,display_name,password_hash,created_at\) VALUES \(\$1,\$2,\$3,\$4,\$5\)`).
		WithArgs(u.ID, u.Email, u.DisplayName, u.PasswordHash, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(u.ID, u.Email, u.DisplayName, u.PasswordHash, now).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, u), auth.ErrUserAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepository(db)
	ctx := context.Background()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, email, display_name, password_hash, created_at FROM users WHERE id = \$1`).
		WithArgs("ann@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "display_name", "password_hash", "created_at"}).
			AddRow("ann@example.com", "ann@example.com", "Ann", "h", created))
	u, err := r.GetByEmail(ctx, "  Ann@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.DisplayName)
	assert.Equal(t, created, u.CreatedAt)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, auth.ErrNotFound)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("ann@example.com").
		WillReturnError(boom)
	_, err = r.GetByEmail(ctx, "ann@example.com")
	require.ErrorIs(t, err, boom)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepository_InsertConflict(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepository(db)
	ctx := context.Background()
	a := share.SharedArticle{ShareID: "abc123def456", Article: json.RawMessage(`{"url":"u"}`), CreatedAt: time.Now().UTC()}

	mock.ExpectExec(`INSERT INTO shared_articles \(share_id,article,created_at,views\) VALUES \(\$1,\$2,\$3,\$4\) ON CONFLICT \(share_id\) DO NOTHING`).
		WithArgs(a.ShareID, `{"url":"u"}`, a.CreatedAt, int64(0)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Insert(ctx, a))

	mock.ExpectExec(`INSERT INTO shared_articles`).
		WithArgs(a.ShareID, `{"url":"u"}`, a.CreatedAt, int64(0)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	require.ErrorIs(t, r.Insert(ctx, a), share.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepository_IncrementViews(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepository(db)
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`UPDATE shared_articles SET views = views \+ 1 WHERE share_id = \$1 RETURNING share_id, article, created_at, views`).
		WithArgs("abc123def456").
		WillReturnRows(pgxmock.NewRows(shareColumns).
			AddRow("abc123def456", []byte(`{"url":"u"}`), created, int64(3)))
	got, err := r.IncrementViews(ctx, "abc123def456")
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Views)
	assert.JSONEq(t, `{"url":"u"}`, string(got.Article))

	mock.ExpectQuery(`UPDATE shared_articles`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.IncrementViews(ctx, "missing")
	require.ErrorIs(t, err, share.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepository_GetAndCount(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT share_id, article, created_at, views FROM shared_articles WHERE share_id = \$1`).
		WithArgs("abc").
		WillReturnRows(pgxmock.NewRows(shareColumns).
			AddRow("abc", []byte(`{}`), time.Now(), int64(0)))
	got, err := r.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Zero(t, got.Views)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM shared_articles`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferencesRepository_SaveAndGet(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewPreferencesRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO preferences \(user_id,data,updated_at\) VALUES \(\$1,\$2,\$3\) ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs("ann@example.com", `{"categories":["technology"]}`, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Save(ctx, "ann@example.com", json.RawMessage(`{"categories":["technology"]}`)))

	mock.ExpectQuery(`SELECT data FROM preferences WHERE user_id = \$1`).
		WithArgs("ann@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow([]byte(`{"categories":["technology"]}`)))
	got, err := r.Get(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":["technology"]}`, string(got))

	mock.ExpectQuery(`SELECT data FROM preferences`).
		WithArgs("bob@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, "bob@example.com")
	require.ErrorIs(t, err, preferences.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
