// Package preferences keeps per-user dashboard settings (categories,
// languages) as opaque JSON objects.
package preferences

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("preferences not found")
	ErrValidation = errors.New("preferences must be a JSON object")
)

type Repository interface {
	Save(ctx context.Context, userID string, prefs json.RawMessage) error
	Get(ctx context.Context, userID string) (json.RawMessage, error)
}

type UseCase interface {
	Save(ctx context.Context, userID string, prefs json.RawMessage) (json.RawMessage, error)
	Get(ctx context.Context, userID string) (json.RawMessage, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Save(ctx context.Context, userID string, prefs json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(prefs)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, ErrValidation
	}
	stored := append(json.RawMessage(nil), trimmed...)
	if err := s.repo.Save(ctx, userID, stored); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return stored, nil
}

// Get returns the stored object, or an empty object for users who never saved.
func (s *service) Get(ctx context.Context, userID string) (json.RawMessage, error) {
	prefs, err := s.repo.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return json.RawMessage(`{}`), nil
	}
	return prefs, err
}
