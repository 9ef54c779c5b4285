package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/swastha/internal/pkg/constants"
)

// RedisLimiter shares counters across instances through Redis
type RedisLimiter struct {
	client *redis.Client
	scope  string
	limit  int
	period time.Duration
}

// NewRedisLimiter allows limit hits per key every period. scope namespaces the keys.
func NewRedisLimiter(client *redis.Client, scope string, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, scope: scope, limit: limit, period: period}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := fmt.Sprintf(constants.KeyRateLimit, l.scope, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.period).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to set rate window: %w", err)
		}
	}

	if count <= int64(l.limit) {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read rate window: %w", err)
	}
	if ttl < 0 {
		// counter lost its expiry; restart the window
		_ = l.client.Expire(ctx, redisKey, l.period).Err()
		ttl = l.period
	}
	return false, ttl, nil
}
