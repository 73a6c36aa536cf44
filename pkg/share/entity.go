package share

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// SharedArticle is an immutable article snapshot reachable by its share id.
type SharedArticle struct {
	ShareID   string          `json:"shareId"`
	Article   json.RawMessage `json:"article"`
	CreatedAt time.Time       `json:"created_at"`
	Views     uint64          `json:"views"`
}

var (
	ErrValidation  = errors.New("no article data provided")
	ErrNotFound    = errors.New("article not found")
	ErrConflict    = errors.New("share id already taken")
	ErrIDExhausted = errors.New("could not mint a unique share id")
)

// Repository stores snapshots keyed by share id. Implementations must make
// Insert an atomic insert-if-absent (ErrConflict when taken) and make
// IncrementViews an atomic read-modify-write returning the post-increment record.
type Repository interface {
	Insert(ctx context.Context, a SharedArticle) error
	Get(ctx context.Context, id string) (SharedArticle, error)
	IncrementViews(ctx context.Context, id string) (SharedArticle, error)
	Count(ctx context.Context) (int, error)
}
