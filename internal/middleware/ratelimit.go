package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/telegram-bff/internal/ratelimit"
	"github.com/serroba/telegram-bff/internal/requestmeta"
	"go.uber.org/zap"
)

// MsgRateLimited is returned with 429 responses.
const MsgRateLimited = "Rate limit exceeded"

// RateLimiter returns a Huma middleware that limits requests per client IP.
//
// Per-endpoint configuration can be provided via operation metadata using
// ratelimit.MetadataKey. This allows endpoints to:
//   - Disable rate limiting entirely (Disabled: true)
//   - Define their own limits (Limits: []ratelimit.LimitConfig{...})
//
// Operations without limits of their own are checked against fallback.
func RateLimiter(
	api huma.API,
	limiter *ratelimit.EndpointLimiter,
	fallback ratelimit.Limiter,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)
		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		ip := requestmeta.ClientIP(ctx)

		var (
			allowed  bool
			exceeded *ratelimit.LimitExceeded
			err      error
		)

		if cfg != nil && len(cfg.Limits) > 0 {
			allowed, exceeded, err = limiter.Allow(ctx.Context(), ip, cfg.Limits)
		} else {
			allowed, err = fallback.Allow(ctx.Context(), ip)
		}

		if err != nil {
			logger.Error("rate limit check failed",
				zap.String("path", operationPath(ctx)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "Internal server error")

			return
		}

		if !allowed {
			fields := []zap.Field{
				zap.String("path", operationPath(ctx)),
				zap.String("method", ctx.Method()),
				zap.String("client_ip", ip),
			}
			if exceeded != nil {
				fields = append(fields,
					zap.Int64("max", exceeded.Config.Max),
					zap.Duration("window", exceeded.Config.Window),
				)
			}

			logger.Warn("rate limit exceeded", fields...)
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, MsgRateLimited)

			return
		}

		next(ctx)
	}
}

// operationPath extracts the path from the operation, if available.
func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
