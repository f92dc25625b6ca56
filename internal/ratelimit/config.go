package ratelimit

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey is the key used to store rate limit config in operation metadata.
const MetadataKey = "rateLimit"

// DefaultLimit applies to operations without their own limits.
var DefaultLimit = LimitConfig{Window: time.Minute, Max: 100}

// LimitConfig is a maximum number of admissions within a sliding window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// PerMinute returns a one-minute limit of n requests.
func PerMinute(n int64) LimitConfig {
	return LimitConfig{Window: time.Minute, Max: n}
}

// EndpointConfig defines per-endpoint rate limit configuration.
// This can be attached to Huma operations via the Metadata field.
type EndpointConfig struct {
	// Limits defines the limits for this endpoint. When empty the
	// middleware falls back to its default limiter.
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// GetEndpointConfig extracts the EndpointConfig from operation metadata, if present.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
