package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/artem13815/newsdash/pkg/preferences"
)

// PreferencesRepository implements preferences.Repository.
type PreferencesRepository struct {
	db  *DB
	now func() time.Time
}

func NewPreferencesRepository(db *DB) *PreferencesRepository {
	return &PreferencesRepository{db: db, now: time.Now}
}

var _ preferences.Repository = (*PreferencesRepository)(nil)

func (r *PreferencesRepository) Save(ctx context.Context, userID string, prefs json.RawMessage) error {
	query, args, err := psql.Insert("preferences").
		Columns("user_id", "data", "updated_at").
		Values(userID, string(prefs), r.now().UTC()).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert preferences: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx, query, args...)
	return err
}

func (r *PreferencesRepository) Get(ctx context.Context, userID string) (json.RawMessage, error) {
	query, args, err := psql.Select("data").
		From("preferences").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select preferences: %w", err)
	}
	var data []byte
	if err := r.db.Pool.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, preferences.ErrNotFound
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}
