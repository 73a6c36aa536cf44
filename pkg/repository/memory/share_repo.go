package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/artem13815/newsdash/pkg/share"
)

// ShareRepository implements share.Repository in process memory.
type ShareRepository struct {
	mu   sync.Mutex
	byID map[string]share.SharedArticle
}

func NewShareRepository() *ShareRepository {
	return &ShareRepository{byID: make(map[string]share.SharedArticle)}
}

var _ share.Repository = (*ShareRepository)(nil)

func (r *ShareRepository) Insert(_ context.Context, a share.SharedArticle) error {
	a.Article = append(json.RawMessage(nil), a.Article...)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[a.ShareID]; exists {
		return share.ErrConflict
	}
	r.byID[a.ShareID] = a
	return nil
}

func (r *ShareRepository) Get(_ context.Context, id string) (share.SharedArticle, error) {
	r.mu.Lock()
	a, ok := r.byID[id]
	r.mu.Unlock()
	if !ok {
		return share.SharedArticle{}, share.ErrNotFound
	}
	return detach(a), nil
}

// IncrementViews holds the lock across the read-modify-write so concurrent
// readers of one id never lose an increment.
func (r *ShareRepository) IncrementViews(_ context.Context, id string) (share.SharedArticle, error) {
	r.mu.Lock()
	a, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return share.SharedArticle{}, share.ErrNotFound
	}
	a.Views++
	r.byID[id] = a
	r.mu.Unlock()
	return detach(a), nil
}

func (r *ShareRepository) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

func detach(a share.SharedArticle) share.SharedArticle {
	a.Article = append(json.RawMessage(nil), a.Article...)
	return a
}
