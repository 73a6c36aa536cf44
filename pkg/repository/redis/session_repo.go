// Package redis stores live sessions in Redis so they survive restarts and
// are shared between instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/newsdash/pkg/auth"
)

const keyPrefix = "newsdash:session:"

// Client is the subset of *redis.Client the repository needs.
type Client interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// SessionRepository implements auth.SessionRepository. Expiry is delegated to
// Redis key TTLs.
type SessionRepository struct {
	client Client
}

func NewSessionRepository(client Client) *SessionRepository {
	return &SessionRepository{client: client}
}

var _ auth.SessionRepository = (*SessionRepository)(nil)

func sessionKey(id string) string { return keyPrefix + id }

func (r *SessionRepository) Save(ctx context.Context, id string, identity auth.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, sessionKey(id), raw, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (auth.Identity, error) {
	raw, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return auth.Identity{}, auth.ErrNotFound
		}
		return auth.Identity{}, err
	}
	var identity auth.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return auth.Identity{}, fmt.Errorf("decode session: %w", err)
	}
	return identity, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, sessionKey(id)).Err()
}
