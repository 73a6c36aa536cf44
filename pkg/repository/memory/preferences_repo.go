package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/artem13815/newsdash/pkg/preferences"
)

// PreferencesRepository implements preferences.Repository in process memory.
type PreferencesRepository struct {
	mu     sync.RWMutex
	byUser map[string]json.RawMessage
}

func NewPreferencesRepository() *PreferencesRepository {
	return &PreferencesRepository{byUser: make(map[string]json.RawMessage)}
}

var _ preferences.Repository = (*PreferencesRepository)(nil)

func (r *PreferencesRepository) Save(_ context.Context, userID string, prefs json.RawMessage) error {
	r.mu.Lock()
	r.byUser[userID] = append(json.RawMessage(nil), prefs...)
	r.mu.Unlock()
	return nil
}

func (r *PreferencesRepository) Get(_ context.Context, userID string) (json.RawMessage, error) {
	r.mu.RLock()
	prefs, ok := r.byUser[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, preferences.ErrNotFound
	}
	return append(json.RawMessage(nil), prefs...), nil
}
