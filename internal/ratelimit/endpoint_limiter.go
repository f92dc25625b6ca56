package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// LimitExceeded contains information about which limit was exceeded.
type LimitExceeded struct {
	Config LimitConfig
}

// EndpointLimiter enforces the limits configured for an endpoint.
type EndpointLimiter struct {
	store Store
}

// NewEndpointLimiter creates a limiter for per-endpoint limit sets.
func NewEndpointLimiter(store Store) *EndpointLimiter {
	return &EndpointLimiter{store: store}
}

// Allow checks every limit in order and stops at the first one exceeded.
// The LimitExceeded return value is nil when the request is allowed.
func (l *EndpointLimiter) Allow(ctx context.Context, clientKey string, limits []LimitConfig) (bool, *LimitExceeded, error) {
	for _, limit := range limits {
		allowed, err := l.store.Allow(ctx, Key(clientKey, limit.Window), limit.Max, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if !allowed {
			return false, &LimitExceeded{Config: limit}, nil
		}
	}

	return true, nil, nil
}

// Store returns the underlying rate limit store.
func (l *EndpointLimiter) Store() Store {
	return l.store
}

// Key builds the ledger key for a client and window.
// Endpoints sharing a window share the client's ledger.
func Key(clientKey string, window time.Duration) string {
	return fmt.Sprintf("%s:%d", clientKey, window.Milliseconds())
}
