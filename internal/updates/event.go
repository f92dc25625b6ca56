// Package updates describes Telegram updates accepted by the webhook receiver.
package updates

import (
	"encoding/json"
	"time"

	"github.com/serroba/telegram-bff/internal/credential"
)

// TopicReceived is the topic accepted updates are published on.
const TopicReceived = "telegram.update.received"

// Received is emitted for each update accepted by the webhook receiver.
type Received struct {
	UpdateID         int64     `json:"updateId"`
	Bot              string    `json:"bot"`
	Kind             string    `json:"kind"`
	HasMessage       bool      `json:"hasMessage"`
	HasCallbackQuery bool      `json:"hasCallbackQuery"`
	HasInlineQuery   bool      `json:"hasInlineQuery"`
	ReceivedAt       time.Time `json:"receivedAt"`
}

// NewReceived summarizes a raw update. The bot token is masked.
func NewReceived(update map[string]any, token string, at time.Time) *Received {
	event := &Received{
		UpdateID:   updateID(update["update_id"]),
		Bot:        credential.Mask(token),
		Kind:       Kind(update),
		ReceivedAt: at,
	}

	event.HasMessage = update["message"] != nil
	event.HasCallbackQuery = update["callback_query"] != nil
	event.HasInlineQuery = update["inline_query"] != nil

	return event
}

// Kind returns the first entry of kinds, in list order, that the update
// carries with a non-null value, or "unknown".
func Kind(update map[string]any) string {
	for _, kind := range kinds {
		if update[kind] != nil {
			return kind
		}
	}

	return "unknown"
}

var kinds = []string{
	"message",
	"edited_message",
	"channel_post",
	"edited_channel_post",
	"callback_query",
	"inline_query",
	"chosen_inline_result",
	"shipping_query",
	"pre_checkout_query",
	"poll",
	"poll_answer",
	"my_chat_member",
	"chat_member",
	"chat_join_request",
}

func updateID(v any) int64 {
	switch id := v.(type) {
	case float64:
		return int64(id)
	case int64:
		return id
	case int:
		return int64(id)
	case json.Number:
		n, _ := id.Int64()

		return n
	default:
		return 0
	}
}
