package middlewares

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is the fixed-window limiter backed by Redis so the
// budget holds across replicas. INCR + EXPIRE per window key.
type RedisRateLimiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int
}

func NewRedisRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{rdb: rdb, window: window, limit: limit}
}

func (rl *RedisRateLimiter) Allow(key string) (bool, time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	redisKey := "ratelimit:" + key

	count, err := rl.rdb.Incr(ctx, redisKey).Result()

	if err != nil {
		// fail open; a degraded limiter must not take the API down
		return true, 0
	}

	if count == 1 {
		rl.rdb.Expire(ctx, redisKey, rl.window)
	}

	if count > int64(rl.limit) {
		ttl, err := rl.rdb.TTL(ctx, redisKey).Result()

		if err != nil || ttl < 0 {
			ttl = rl.window
		}
		return false, ttl
	}

	return true, 0
}
