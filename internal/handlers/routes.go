package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/telegram-bff/internal/auth"
	"github.com/serroba/telegram-bff/internal/gate"
	"github.com/serroba/telegram-bff/internal/ratelimit"
)

// Paths of endpoints outside the gated operation table.
const (
	IndexPath   = "/api"
	WebhookPath = gate.BotPrefix + "/webhook"
)

// Routes holds the handlers registered by RegisterRoutes.
type Routes struct {
	Telegram *TelegramHandler
	Webhook  *WebhookHandler
	Index    *IndexHandler
}

// RegisterRoutes registers every Bot API operation, the execute and webhook
// endpoints and the index, each with its own rate limit.
func RegisterRoutes(api huma.API, ops []gate.Operation, routes Routes) {
	for _, op := range ops {
		huma.Register(api, huma.Operation{
			OperationID: op.Name,
			Method:      http.MethodPost,
			Path:        op.Path,
			Summary:     op.Summary,
			Tags:        []string{"Telegram"},
			Security:    apiKeySecurity,
			Metadata:    limitMetadata(op.RateLimit),
		}, routes.Telegram.Body(op))

		// Read-only operations also accept GET with the token in the query string.
		if op.Query {
			huma.Register(api, huma.Operation{
				OperationID: op.Name + "-query",
				Method:      http.MethodGet,
				Path:        op.Path,
				Summary:     op.Summary,
				Tags:        []string{"Telegram"},
				Security:    apiKeySecurity,
				Metadata:    limitMetadata(op.RateLimit),
			}, routes.Telegram.Query(op))
		}
	}

	execute := gate.ExecuteOperation()
	huma.Register(api, huma.Operation{
		OperationID: execute.Name,
		Method:      http.MethodPost,
		Path:        execute.Path,
		Summary:     execute.Summary,
		Description: "Runs any Telegram operation named by the action field.",
		Tags:        []string{"Bot"},
		Security:    apiKeySecurity,
		Metadata:    limitMetadata(execute.RateLimit),
	}, routes.Telegram.Execute)

	webhookMeta := limitMetadata(ratelimit.PerMinute(1000))
	webhookMeta[auth.MetadataKey] = true

	huma.Register(api, huma.Operation{
		OperationID: "webhook",
		Method:      http.MethodPost,
		Path:        WebhookPath,
		Summary:     "Receive Telegram update",
		Tags:        []string{"Bot"},
		Metadata:    webhookMeta,
	}, routes.Webhook.Receive)

	huma.Register(api, huma.Operation{
		OperationID: "index",
		Method:      http.MethodGet,
		Path:        IndexPath,
		Summary:     "List endpoints",
		Tags:        []string{"System"},
		Metadata: map[string]any{
			auth.MetadataKey:      true,
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, routes.Index.Get)
}

func limitMetadata(limit ratelimit.LimitConfig) map[string]any {
	return map[string]any{
		ratelimit.MetadataKey: ratelimit.EndpointConfig{
			Limits: []ratelimit.LimitConfig{limit},
		},
	}
}
