package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// maxMintAttempts bounds regeneration after id collisions.
const maxMintAttempts = 8

// UseCase is the share-link registry.
type UseCase interface {
	Create(ctx context.Context, payload json.RawMessage) (SharedArticle, error)
	Get(ctx context.Context, id string) (SharedArticle, error)
	Count(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
	ids  IdentifierGenerator
	now  func() time.Time
}

func NewService(repo Repository, ids IdentifierGenerator) UseCase {
	return &service{repo: repo, ids: ids, now: time.Now}
}

// Create stores a snapshot under a freshly minted id. Sharing the same
// payload twice yields two independent entries.
func (s *service) Create(ctx context.Context, payload json.RawMessage) (SharedArticle, error) {
	url, err := validatePayload(payload)
	if err != nil {
		return SharedArticle{}, err
	}
	snapshot := SharedArticle{
		Article:   append(json.RawMessage(nil), payload...),
		CreatedAt: s.now().UTC(),
	}
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		snapshot.ShareID = s.ids.Generate(url, attempt)
		err := s.repo.Insert(ctx, snapshot)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, ErrConflict) {
			return SharedArticle{}, fmt.Errorf("insert share: %w", err)
		}
	}
	return SharedArticle{}, ErrIDExhausted
}

// Get returns the snapshot and counts the read.
func (s *service) Get(ctx context.Context, id string) (SharedArticle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return SharedArticle{}, ErrNotFound
	}
	return s.repo.IncrementViews(ctx, id)
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func validatePayload(payload json.RawMessage) (string, error) {
	if len(payload) == 0 {
		return "", ErrValidation
	}
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil || len(fields) == 0 {
		return "", ErrValidation
	}
	url, _ := fields["url"].(string)
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%w: article url is required", ErrValidation)
	}
	return url, nil
}
