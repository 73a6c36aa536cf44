package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/artem13815/newsdash/pkg/auth"
)

// UserRepository implements auth.UserRepository. The primary key on id gives
// the atomic insert-if-absent the auth service relies on.
type UserRepository struct{ db *DB }

func NewUserRepository(db *DB) *UserRepository { return &UserRepository{db: db} }

var _ auth.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	query, args, err := psql.Insert("users").
		Columns("id", "email", "display_name", "password_hash", "created_at").
		Values(user.ID, user.Email, user.DisplayName, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	if _, err := r.db.Pool.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return auth.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	query, args, err := psql.Select("id", "email", "display_name", "password_hash", "created_at").
		From("users").
		Where("id = ?", auth.NormalizeEmail(email)).
		ToSql()
	if err != nil {
		return auth.User{}, fmt.Errorf("build select user: %w", err)
	}
	var user auth.User
	err = r.db.Pool.QueryRow(ctx, query, args...).
		Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}
