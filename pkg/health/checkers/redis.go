package checkers

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisPinger is satisfied by *redis.Client.
type RedisPinger interface {
	Ping(ctx context.Context) *goredis.StatusCmd
}

type RedisChecker struct {
	client RedisPinger
}

func NewRedisChecker(client RedisPinger) *RedisChecker {
	return &RedisChecker{client: client}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}
