package gate

import (
	"errors"
	"strings"

	"github.com/serroba/telegram-bff/internal/botapi"
	"github.com/serroba/telegram-bff/internal/ratelimit"
)

// Route prefixes for gated operations.
const (
	TelegramPrefix = "/api/telegram"
	BotPrefix      = "/api/bot"
)

// ActionExecute is the name of the generic dispatch operation.
const ActionExecute = "execute"

var errWebhookScheme = errors.New("Webhook URL must use HTTPS")

// Operation configures the gate for one inbound endpoint.
type Operation struct {
	// Name is the inbound operation name and the execute action name.
	Name string
	Path string
	// Method is the Bot API method called on success.
	Method         string
	Summary        string
	RequiredFields []string
	RateLimit      ratelimit.LimitConfig
	// Query operations accept GET with the token in the query string.
	Query bool
	// Validate runs after the token check; its error text is returned to the caller.
	Validate func(Params) error
	// Build maps inbound params to the Bot API payload.
	Build          func(Params) map[string]any
	SuccessMessage string
	FailureMessage string
}

// Operations returns every operation forwarded to the Bot API, excluding execute.
func Operations() []Operation {
	return []Operation{
		{
			Name:           "getMe",
			Path:           TelegramPrefix + "/getMe",
			Method:         botapi.MethodGetMe,
			Summary:        "Get bot information",
			RequiredFields: []string{"token"},
			RateLimit:      ratelimit.PerMinute(60),
			Query:          true,
			SuccessMessage: "Bot information retrieved successfully",
			FailureMessage: "Failed to get bot information",
		},
		{
			Name:           "getWebhookInfo",
			Path:           TelegramPrefix + "/getWebhookInfo",
			Method:         botapi.MethodGetWebhookInfo,
			Summary:        "Get webhook information",
			RequiredFields: []string{"token"},
			RateLimit:      ratelimit.PerMinute(60),
			Query:          true,
			SuccessMessage: "Webhook information retrieved successfully",
			FailureMessage: "Failed to get webhook information",
		},
		{
			Name:           "setWebhook",
			Path:           TelegramPrefix + "/setWebhook",
			Method:         botapi.MethodSetWebhook,
			Summary:        "Set webhook",
			RequiredFields: []string{"token", "webhook_url"},
			RateLimit:      ratelimit.PerMinute(30),
			Validate:       validateWebhookURL,
			Build:          setWebhookPayload,
			SuccessMessage: "Webhook set successfully",
			FailureMessage: "Failed to set webhook",
		},
		{
			Name:           "sendMessage",
			Path:           TelegramPrefix + "/sendMessage",
			Method:         botapi.MethodSendMessage,
			Summary:        "Send message",
			RequiredFields: []string{"token", "chat_id", "text"},
			RateLimit:      ratelimit.PerMinute(100),
			Build:          sendMessagePayload,
			SuccessMessage: "Message sent successfully",
			FailureMessage: "Failed to send message",
		},
		{
			Name:           "editMessage",
			Path:           TelegramPrefix + "/editMessage",
			Method:         botapi.MethodEditMessageText,
			Summary:        "Edit message text",
			RequiredFields: []string{"token", "chat_id", "message_id", "text"},
			RateLimit:      ratelimit.PerMinute(100),
			Build:          editMessagePayload,
			SuccessMessage: "Message edited successfully",
			FailureMessage: "Failed to edit message",
		},
		{
			Name:           "deleteMessage",
			Path:           TelegramPrefix + "/deleteMessage",
			Method:         botapi.MethodDeleteMessage,
			Summary:        "Delete message",
			RequiredFields: []string{"token", "chat_id", "message_id"},
			RateLimit:      ratelimit.PerMinute(100),
			Build:          deleteMessagePayload,
			SuccessMessage: "Message deleted successfully",
			FailureMessage: "Failed to delete message",
		},
		{
			Name:           "answerCallbackQuery",
			Path:           TelegramPrefix + "/answerCallbackQuery",
			Method:         botapi.MethodAnswerCallbackQuery,
			Summary:        "Answer callback query",
			RequiredFields: []string{"token", "callback_query_id"},
			RateLimit:      ratelimit.PerMinute(200),
			Build:          answerCallbackQueryPayload,
			SuccessMessage: "Callback query answered successfully",
			FailureMessage: "Failed to answer callback query",
		},
		{
			Name:           "getUpdates",
			Path:           TelegramPrefix + "/getUpdates",
			Method:         botapi.MethodGetUpdates,
			Summary:        "Get updates (polling)",
			RequiredFields: []string{"token"},
			RateLimit:      ratelimit.PerMinute(30),
			Build:          getUpdatesPayload,
			SuccessMessage: "Updates retrieved successfully",
			FailureMessage: "Failed to get updates",
		},
	}
}

// ExecuteOperation describes the generic dispatch endpoint.
func ExecuteOperation() Operation {
	return Operation{
		Name:           ActionExecute,
		Path:           BotPrefix + "/execute",
		Summary:        "Execute bot action",
		RequiredFields: []string{"token", "action"},
		RateLimit:      ratelimit.PerMinute(200),
	}
}

func validateWebhookURL(p Params) error {
	webhookURL, ok := p.StringField("webhook_url")
	if !ok || !strings.HasPrefix(webhookURL, "https://") {
		return errWebhookScheme
	}

	return nil
}

func setWebhookPayload(p Params) map[string]any {
	payload := map[string]any{
		"url":                  p["webhook_url"],
		"max_connections":      p.Or("max_connections", 40),
		"allowed_updates":      p.Or("allowed_updates", []string{"message", "callback_query", "inline_query"}),
		"drop_pending_updates": p.Or("drop_pending_updates", false),
	}
	p.copyTruthy(payload, "secret_token")

	return payload
}

func sendMessagePayload(p Params) map[string]any {
	payload := map[string]any{
		"chat_id":                  p["chat_id"],
		"text":                     p["text"],
		"parse_mode":               p.Or("parse_mode", "HTML"),
		"disable_web_page_preview": p.Or("disable_web_page_preview", false),
		"disable_notification":     p.Or("disable_notification", false),
	}
	p.copyTruthy(payload, "reply_to_message_id", "reply_markup")

	return payload
}

func editMessagePayload(p Params) map[string]any {
	payload := map[string]any{
		"chat_id":                  p["chat_id"],
		"message_id":               p["message_id"],
		"text":                     p["text"],
		"parse_mode":               p.Or("parse_mode", "HTML"),
		"disable_web_page_preview": p.Or("disable_web_page_preview", false),
	}
	p.copyTruthy(payload, "reply_markup")

	return payload
}

func deleteMessagePayload(p Params) map[string]any {
	return map[string]any{
		"chat_id":    p["chat_id"],
		"message_id": p["message_id"],
	}
}

func answerCallbackQueryPayload(p Params) map[string]any {
	payload := map[string]any{
		"callback_query_id": p["callback_query_id"],
		"text":              p.Or("text", ""),
		"show_alert":        p.Or("show_alert", false),
		"cache_time":        p.Or("cache_time", 0),
	}
	p.copyTruthy(payload, "url")

	return payload
}

func getUpdatesPayload(p Params) map[string]any {
	payload := map[string]any{
		"limit":           p.Or("limit", 100),
		"timeout":         p.Or("timeout", 0),
		"allowed_updates": p.Or("allowed_updates", []string{"message", "callback_query"}),
	}
	p.copyTruthy(payload, "offset")

	return payload
}
