package middleware

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/telegram-bff/internal/requestmeta"
	"go.uber.org/zap"
)

// RequestMeta adds the request ID, client IP, user-agent and referrer to the
// request context, echoes the request ID and logs the request.
func RequestMeta(logger *zap.Logger, newID func() string) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		id := ctx.Header(requestmeta.HeaderRequestID)
		if id == "" {
			id = newID()
		}

		meta := requestmeta.Meta{
			RequestID: id,
			ClientIP:  requestmeta.ClientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		ctx.SetHeader(requestmeta.HeaderRequestID, id)

		var operation string
		if op := ctx.Operation(); op != nil {
			operation = op.OperationID
		}

		logger.Info("request received",
			zap.String("method", ctx.Method()),
			zap.String("path", operationPath(ctx)),
			zap.String("operation", operation),
			zap.String("client_ip", meta.ClientIP),
			zap.String("user_agent", meta.UserAgent),
			zap.String("request_id", id),
		)

		next(huma.WithContext(ctx, requestmeta.WithMeta(ctx.Context(), meta)))
	}
}
