package handlers

// BodyInput is the JSON body of a gated operation. Field presence is
// checked by the gate, not by schema validation.
type BodyInput struct {
	Body map[string]any `doc:"Operation parameters, including the bot token" required:"false"`
}

// QueryInput carries the bot token for read-only operations called with GET.
type QueryInput struct {
	Token string `doc:"Bot token" query:"token"`
}

// WebhookInput is an update delivered by Telegram.
type WebhookInput struct {
	Token       string         `doc:"Bot token"                              query:"token"`
	SecretToken string         `doc:"Secret token configured with setWebhook" header:"X-Telegram-Bot-Api-Secret-Token"`
	Body        map[string]any `doc:"Telegram update"                        required:"false"`
}

// Index is the payload of the API index.
type Index struct {
	Endpoints []string `json:"endpoints"`
}
