package updates

import (
	"context"

	"github.com/serroba/telegram-bff/internal/messaging"
	"go.uber.org/zap"
)

// LogHandler logs each received update. Updates are not stored.
func LogHandler(logger *zap.Logger) messaging.Handler[Received] {
	return func(_ context.Context, event *Received) error {
		logger.Info("telegram update received",
			zap.Int64("update_id", event.UpdateID),
			zap.String("bot", event.Bot),
			zap.String("kind", event.Kind),
			zap.Time("received_at", event.ReceivedAt),
		)

		return nil
	}
}
