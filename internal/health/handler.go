package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/telegram-bff/internal/auth"
	"github.com/serroba/telegram-bff/internal/ratelimit"
	"github.com/serroba/telegram-bff/internal/response"
)

// Path is where the health endpoint is served.
const Path = "/api/health"

const pingTimeout = 2 * time.Second

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Info describes the running service.
type Info struct {
	Version        string
	Environment    string
	RateLimitStore string
	StartedAt      time.Time
}

// Status is the health payload carried in the envelope's data field.
type Status struct {
	Status         string `json:"status"                    enum:"healthy,degraded"`
	Version        string `json:"version"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	Environment    string `json:"environment"`
	RateLimitStore string `json:"rate_limit_store"`
	Redis          string `json:"redis,omitempty"`
}

// Handler handles health check operations.
type Handler struct {
	info  Info
	redis Checker
	now   func() time.Time
}

// NewHandler creates a new health handler. redis may be nil when the
// service runs without Redis.
func NewHandler(info Info, redis Checker) *Handler {
	return &Handler{info: info, redis: redis, now: time.Now}
}

// Check performs a health check of the service and its dependencies.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*response.Output, error) {
	status := Status{
		Status:         "healthy",
		Version:        h.info.Version,
		UptimeSeconds:  int64(h.now().Sub(h.info.StartedAt).Seconds()),
		Environment:    h.info.Environment,
		RateLimitStore: h.info.RateLimitStore,
	}

	if h.redis != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := h.redis.Ping(pingCtx); err != nil {
			status.Redis = "unhealthy"
			status.Status = "degraded"
		} else {
			status.Redis = "healthy"
		}
	}

	if status.Status != "healthy" {
		return response.OK(status, "Service is degraded"), nil
	}

	return response.OK(status, "Service is healthy"), nil
}

// RegisterRoutes registers health check routes. The endpoint is public and
// never rate limited.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Health check",
		Tags:        []string{"System"},
		Metadata: map[string]any{
			auth.MetadataKey:      true,
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
