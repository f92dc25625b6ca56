package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/serroba/telegram-bff/internal/auth"
	"github.com/serroba/telegram-bff/internal/gate"
	"github.com/serroba/telegram-bff/internal/messaging"
	"github.com/serroba/telegram-bff/internal/requestmeta"
	"github.com/serroba/telegram-bff/internal/response"
	"github.com/serroba/telegram-bff/internal/updates"
	"go.uber.org/zap"
)

// Webhook rejection messages.
const (
	MsgBotTokenRequired     = "Bot token required"
	MsgInvalidWebhookSecret = "Invalid webhook secret"
	MsgInvalidUpdate        = "Invalid update format"
)

// WebhookHandler accepts updates pushed by Telegram.
type WebhookHandler struct {
	publish messaging.Publish[updates.Received]
	secret  *auth.Verifier
	logger  *zap.Logger
	now     func() time.Time
}

// NewWebhookHandler creates a webhook receiver. When secret is non-empty,
// the secret token header must match it.
func NewWebhookHandler(publish messaging.Publish[updates.Received], secret string, logger *zap.Logger) *WebhookHandler {
	h := &WebhookHandler{
		publish: publish,
		logger:  logger,
		now:     time.Now,
	}

	if secret != "" {
		h.secret = auth.NewVerifier(secret)
	}

	return h
}

// Receive validates an update and publishes it for processing.
func (h *WebhookHandler) Receive(ctx context.Context, in *WebhookInput) (*response.Output, error) {
	token := in.Token
	if token == "" {
		token = in.SecretToken
	}

	if token == "" {
		return response.Fail(http.StatusBadRequest, MsgBotTokenRequired, ""), nil
	}

	if h.secret != nil && !h.secret.Verify(in.SecretToken) {
		h.logger.Warn("webhook secret rejected",
			zap.String("client_ip", requestmeta.FromContext(ctx).ClientIP),
		)

		return response.Fail(http.StatusUnauthorized, MsgInvalidWebhookSecret, ""), nil
	}

	if !gate.Truthy(in.Body["update_id"]) {
		return response.Fail(http.StatusBadRequest, MsgInvalidUpdate, ""), nil
	}

	event := updates.NewReceived(in.Body, token, h.now())

	if err := h.publish(ctx, event); err != nil {
		h.logger.Error("failed to publish update",
			zap.Int64("update_id", event.UpdateID),
			zap.String("bot", event.Bot),
			zap.Error(err),
		)
	}

	return response.OK(map[string]bool{"processed": true}, "Webhook processed successfully"), nil
}
