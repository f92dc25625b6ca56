package botapi

// Bot API method names used by the gateway.
const (
	MethodGetMe               = "getMe"
	MethodGetWebhookInfo      = "getWebhookInfo"
	MethodSetWebhook          = "setWebhook"
	MethodSendMessage         = "sendMessage"
	MethodEditMessageText     = "editMessageText"
	MethodDeleteMessage       = "deleteMessage"
	MethodAnswerCallbackQuery = "answerCallbackQuery"
	MethodGetUpdates          = "getUpdates"
)
