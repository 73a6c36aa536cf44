package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/artem13815/newsdash/pkg/share"
)

// ShareRepository implements share.Repository over the shared_articles table.
type ShareRepository struct{ db *DB }

func NewShareRepository(db *DB) *ShareRepository { return &ShareRepository{db: db} }

var _ share.Repository = (*ShareRepository)(nil)

var shareColumns = []string{"share_id", "article", "created_at", "views"}

func (r *ShareRepository) Insert(ctx context.Context, a share.SharedArticle) error {
	query, args, err := psql.Insert("shared_articles").
		Columns(shareColumns...).
		Values(a.ShareID, string(a.Article), a.CreatedAt, int64(a.Views)).
		Suffix("ON CONFLICT (share_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert share: %w", err)
	}
	tag, err := r.db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return share.ErrConflict
	}
	return nil
}

func (r *ShareRepository) Get(ctx context.Context, id string) (share.SharedArticle, error) {
	query, args, err := psql.Select(shareColumns...).
		From("shared_articles").
		Where(sq.Eq{"share_id": id}).
		ToSql()
	if err != nil {
		return share.SharedArticle{}, fmt.Errorf("build select share: %w", err)
	}
	return scanShare(r.db.Pool.QueryRow(ctx, query, args...))
}

// IncrementViews bumps the counter in a single UPDATE, so concurrent readers
// never lose an increment.
func (r *ShareRepository) IncrementViews(ctx context.Context, id string) (share.SharedArticle, error) {
	query, args, err := psql.Update("shared_articles").
		Set("views", sq.Expr("views + 1")).
		Where(sq.Eq{"share_id": id}).
		Suffix("RETURNING share_id, article, created_at, views").
		ToSql()
	if err != nil {
		return share.SharedArticle{}, fmt.Errorf("build increment views: %w", err)
	}
	return scanShare(r.db.Pool.QueryRow(ctx, query, args...))
}

func (r *ShareRepository) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("shared_articles").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count shares: %w", err)
	}
	var n int
	if err := r.db.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanShare(row pgx.Row) (share.SharedArticle, error) {
	var (
		a       share.SharedArticle
		article []byte
		views   int64
	)
	if err := row.Scan(&a.ShareID, &article, &a.CreatedAt, &views); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return share.SharedArticle{}, share.ErrNotFound
		}
		return share.SharedArticle{}, err
	}
	a.Article = json.RawMessage(article)
	a.CreatedAt = a.CreatedAt.UTC()
	a.Views = uint64(views)
	return a, nil
}
