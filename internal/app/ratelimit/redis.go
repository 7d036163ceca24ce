package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/roamdine/platform/internal/errors"
)

// Redis is a fixed-window limiter sharing counters across processes. The
// increment-and-check happens at the store, so concurrent consumers in
// different processes see one budget per key.
type Redis struct {
	client *redis.Client
	limit  int
	window time.Duration
}

var _ Limiter = (*Redis)(nil)

// NewRedis creates a shared limiter over the given client.
func NewRedis(client *redis.Client, limit int, windowSize time.Duration) *Redis {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if windowSize <= 0 {
		windowSize = DefaultWindow
	}
	return &Redis{client: client, limit: limit, window: windowSize}
}

func (l *Redis) Consume(ctx context.Context, key string) error {
	redisKey := "ratelimit:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return errors.Persistence(err)
	}
	if count == 1 {
		// First consumption in the window starts the clock.
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return errors.Persistence(err)
		}
	}
	if count > int64(l.limit) {
		return errors.RateLimited(key)
	}
	return nil
}
