package container

// Version is reported by the health endpoint and the OpenAPI document.
const Version = "1.0.0"

// Rate limit store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Options are read from flags or SERVICE_* environment variables.
type Options struct {
	Port           int    `default:"8080"                     help:"Port to listen on"                                            short:"p"`
	APISecretKey   string `help:"Shared secret clients send in X-API-Key (empty rejects every gated request)"`
	AllowedOrigins string `default:"*"                        help:"Comma separated CORS origins"`
	WebhookSecret  string `help:"Expected X-Telegram-Bot-Api-Secret-Token on webhook calls"`
	BotAPIBaseURL  string `default:"https://api.telegram.org" help:"Telegram Bot API base URL"`
	RateLimitStore string `default:"memory"                   help:"Rate limit backend: memory or redis"`
	RedisAddr      string `default:"localhost:6379"           help:"Redis server address"                                         short:"r"`
	LogFormat      string `default:"json"                     help:"Log output format: json or console"`
	LogLevel       string `default:"info"                     help:"Minimum log level"`
	Environment    string `default:"production"               help:"Deployment environment reported by the health check"`
}
