package memory

import (
	"context"
	"sync"
	"time"

	"github.com/artem13815/newsdash/pkg/auth"
)

// sweepEvery is how many saves pass between full scans for expired sessions.
const sweepEvery = 128

type sessionEntry struct {
	identity  auth.Identity
	expiresAt time.Time // zero means no expiry
}

func (e sessionEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// SessionRepository implements auth.SessionRepository in process memory.
type SessionRepository struct {
	mu    sync.RWMutex
	byID  map[string]sessionEntry
	now   func() time.Time
	saves int
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{byID: make(map[string]sessionEntry), now: time.Now}
}

var _ auth.SessionRepository = (*SessionRepository)(nil)

func (r *SessionRepository) Save(_ context.Context, id string, identity auth.Identity, ttl time.Duration) error {
	entry := sessionEntry{identity: identity}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = entry
	r.saves++
	if r.saves%sweepEvery == 0 {
		now := r.now()
		for k, e := range r.byID {
			if e.expired(now) {
				delete(r.byID, k)
			}
		}
	}
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (auth.Identity, error) {
	r.mu.RLock()
	entry, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return auth.Identity{}, auth.ErrNotFound
	}
	if now := r.now(); entry.expired(now) {
		r.mu.Lock()
		// a concurrent Save may have refreshed the id
		if cur, ok := r.byID[id]; ok && cur.expired(now) {
			delete(r.byID, id)
		}
		r.mu.Unlock()
		return auth.Identity{}, auth.ErrNotFound
	}
	return entry.identity, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
