package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/telegram-bff/internal/auth"
	"github.com/serroba/telegram-bff/internal/requestmeta"
	"go.uber.org/zap"
)

// MsgUnauthorized is returned with 401 responses.
const MsgUnauthorized = "Unauthorized"

// APIKey rejects requests to non-public operations that do not present the
// configured secret.
func APIKey(api huma.API, verifier *auth.Verifier, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if auth.IsPublic(ctx.Operation()) {
			next(ctx)

			return
		}

		if !verifier.Verify(auth.Presented(ctx)) {
			logger.Warn("api key rejected",
				zap.String("path", operationPath(ctx)),
				zap.String("client_ip", requestmeta.ClientIP(ctx)),
			)
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, MsgUnauthorized)

			return
		}

		next(ctx)
	}
}
