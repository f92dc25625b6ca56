package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript prunes, counts and conditionally records in one step.
// KEYS[1] ledger key; ARGV[1] now (ms); ARGV[2] window (ms); ARGV[3] limit; ARGV[4] member.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call("ZREMRANGEBYSCORE", key, "-inf", now - window)

if redis.call("ZCARD", key) >= limit then
	return 0
end

redis.call("ZADD", key, now, ARGV[4])
redis.call("PEXPIRE", key, window)

return 1
`)

// RateLimitRedisStore is a Redis implementation of ratelimit.Store.
// It lets several gateway instances share one ledger.
type RateLimitRedisStore struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRedisStore creates a new Redis-backed rate limit store.
func NewRateLimitRedisStore(client *redis.Client) *RateLimitRedisStore {
	return &RateLimitRedisStore{
		client: client,
		prefix: "ratelimit:",
	}
}

func (r *RateLimitRedisStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	now := time.Now().UnixMilli()
	member := strconv.FormatInt(now, 10) + "-" + uuid.NewString()

	result, err := slidingWindowScript.Run(ctx, r.client,
		[]string{r.prefix + key},
		now,
		window.Milliseconds(),
		limit,
		member,
	).Int64()
	if err != nil {
		return false, fmt.Errorf("rate limit script: %w", err)
	}

	return result == 1, nil
}
