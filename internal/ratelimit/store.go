package ratelimit

import (
	"context"
	"time"
)

// Store defines the interface for rate limit data storage.
type Store interface {
	// Allow prunes entries older than window for key and admits the request
	// if fewer than limit remain. Rejected requests are not recorded.
	// The prune-check-append sequence must be atomic per key.
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (allowed bool, err error)
}
