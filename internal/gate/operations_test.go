package gate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/serroba/telegram-bff/internal/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperations_Table(t *testing.T) {
	limits := map[string]int64{
		"getMe":               60,
		"getWebhookInfo":      60,
		"setWebhook":          30,
		"sendMessage":         100,
		"editMessage":         100,
		"deleteMessage":       100,
		"answerCallbackQuery": 200,
		"getUpdates":          30,
	}

	ops := gate.Operations()
	require.Len(t, ops, len(limits))

	for _, op := range ops {
		want, ok := limits[op.Name]
		require.True(t, ok, op.Name)
		assert.Equal(t, want, op.RateLimit.Max, op.Name)
		assert.Equal(t, gate.TelegramPrefix+"/"+op.Name, op.Path)
		assert.Equal(t, "token", op.RequiredFields[0], op.Name)
	}

	assert.Equal(t, int64(200), gate.ExecuteOperation().RateLimit.Max)
}

func TestPayloads(t *testing.T) {
	tests := []struct {
		name   string
		params gate.Params
		want   map[string]any
	}{
		{
			name: "editMessage",
			params: gate.Params{
				"token": validToken, "chat_id": 1, "message_id": 2, "text": "t",
				"parse_mode": "MarkdownV2", "reply_markup": map[string]any{"inline_keyboard": []any{}},
			},
			want: map[string]any{
				"chat_id": 1, "message_id": 2, "text": "t",
				"parse_mode":               "MarkdownV2",
				"disable_web_page_preview": false,
				"reply_markup":             map[string]any{"inline_keyboard": []any{}},
			},
		},
		{
			name:   "deleteMessage",
			params: gate.Params{"token": validToken, "chat_id": 1, "message_id": 2},
			want:   map[string]any{"chat_id": 1, "message_id": 2},
		},
		{
			name:   "answerCallbackQuery",
			params: gate.Params{"token": validToken, "callback_query_id": "cb", "show_alert": true},
			want: map[string]any{
				"callback_query_id": "cb",
				"text":              "",
				"show_alert":        true,
				"cache_time":        0,
			},
		},
		{
			name:   "getUpdates",
			params: gate.Params{"token": validToken, "offset": 10},
			want: map[string]any{
				"offset":          10,
				"limit":           100,
				"timeout":         0,
				"allowed_updates": []string{"message", "callback_query"},
			},
		},
		{
			name:   "getUpdates zero offset is omitted",
			params: gate.Params{"token": validToken, "offset": 0, "limit": 5},
			want: map[string]any{
				"limit":           5,
				"timeout":         0,
				"allowed_updates": []string{"message", "callback_query"},
			},
		},
		{
			name:   "sendMessage optional reply",
			params: gate.Params{"token": validToken, "chat_id": 1, "text": "x", "reply_to_message_id": 4},
			want: map[string]any{
				"chat_id": 1, "text": "x",
				"parse_mode":               "HTML",
				"disable_web_page_preview": false,
				"disable_notification":     false,
				"reply_to_message_id":      4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, inv := newGate(okEnvelope(`true`))

			g.Run(context.Background(), operation(t, strings.Fields(tt.name)[0]), tt.params)

			require.Len(t, inv.calls, 1)
			assert.Equal(t, tt.want, inv.calls[0].payload)
		})
	}
}
