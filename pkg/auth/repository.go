package auth

import (
	"context"
	"errors"
	"time"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("email and password are required")
	ErrPasswordTooLong    = errors.New("password too long (max 72 bytes)")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Create must be an atomic insert-if-absent keyed by User.ID and report
// ErrUserAlreadyExists when the key is taken.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	GetByEmail(ctx context.Context, email string) (User, error)
}

// SessionRepository tracks live sessions by session id. Delete of an unknown
// id is not an error.
type SessionRepository interface {
	Save(ctx context.Context, id string, identity Identity, ttl time.Duration) error
	Get(ctx context.Context, id string) (Identity, error)
	Delete(ctx context.Context, id string) error
}
