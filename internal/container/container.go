package container

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/jaevor/go-nanoid"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/telegram-bff/internal/auth"
	"github.com/serroba/telegram-bff/internal/botapi"
	"github.com/serroba/telegram-bff/internal/gate"
	"github.com/serroba/telegram-bff/internal/handlers"
	"github.com/serroba/telegram-bff/internal/health"
	"github.com/serroba/telegram-bff/internal/messaging"
	"github.com/serroba/telegram-bff/internal/middleware"
	"github.com/serroba/telegram-bff/internal/ratelimit"
	"github.com/serroba/telegram-bff/internal/store"
	"github.com/serroba/telegram-bff/internal/updates"
	"go.uber.org/zap"
)

const requestIDLength = 21

// Redis wraps the client so the injector closes it on shutdown.
type Redis struct {
	*redis.Client
}

// Shutdown closes the Redis connection pool.
func (r *Redis) Shutdown() error {
	return r.Close()
}

// Register provides every service package.
func Register(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	RateLimitPackage(injector)
	BotAPIPackage(injector)
	GatePackage(injector)
	MessagingPackage(injector)
	HTTPPackage(injector)
}

// LoggerPackage provides *zap.Logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return NewLogger(opts.LogFormat, opts.LogLevel)
	})
}

// NewLogger builds a console (development) or JSON (production) logger.
func NewLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = lvl

	return cfg.Build()
}

// RedisPackage provides *Redis. The client is only created when invoked.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Redis, error) {
		opts := do.MustInvoke[*Options](i)

		return &Redis{Client: redis.NewClient(&redis.Options{Addr: opts.RedisAddr})}, nil
	})
}

// RateLimitPackage provides the limiter store, the per-endpoint limiter and
// the default limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.RateLimitStore {
		case StoreMemory, "":
			return store.NewRateLimitMemoryStore(), nil
		case StoreRedis:
			return store.NewRateLimitRedisStore(do.MustInvoke[*Redis](i).Client), nil
		default:
			return nil, fmt.Errorf("unknown rate limit store %q", opts.RateLimitStore)
		}
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.EndpointLimiter, error) {
		return ratelimit.NewEndpointLimiter(do.MustInvoke[ratelimit.Store](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		return ratelimit.NewSlidingWindowLimiter(
			do.MustInvoke[ratelimit.Store](i),
			ratelimit.DefaultLimit.Max,
			ratelimit.DefaultLimit.Window,
		), nil
	})
}

// BotAPIPackage provides the Bot API client.
func BotAPIPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (botapi.Invoker, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return botapi.NewClient(logger, botapi.WithBaseURL(opts.BotAPIBaseURL)), nil
	})
}

// GatePackage provides the request gate.
func GatePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gate.Gate, error) {
		return gate.New(do.MustInvoke[botapi.Invoker](i), do.MustInvoke[*zap.Logger](i)), nil
	})
}

// MessagingPackage provides the in-process pub/sub, the update publisher and
// the consumer group logging received updates.
func MessagingPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gochannel.GoChannel, error) {
		return messaging.NewInProcess(do.MustInvoke[*zap.Logger](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		return messaging.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[updates.Received], error) {
		group := do.MustInvoke[*messaging.PublisherGroup](i)

		return messaging.NewPublishFunc[updates.Received](group.Publisher(), updates.TopicReceived), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		pubsub := do.MustInvoke[*gochannel.GoChannel](i)
		logger := do.MustInvoke[*zap.Logger](i)

		group := messaging.NewConsumerGroup(pubsub, logger)
		group.Add(messaging.NewConsumer(pubsub, updates.TopicReceived, updates.LogHandler(logger), logger))

		return group, nil
	})
}

// HTTPPackage provides the router and the API with middleware and routes
// registered. Invoking huma.API triggers route registration.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*chi.Mux, error) {
		opts := do.MustInvoke[*Options](i)

		return handlers.NewRouter(middleware.ParseOrigins(opts.AllowedOrigins)), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		newID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, fmt.Errorf("request id generator: %w", err)
		}

		api := handlers.NewAPI(do.MustInvoke[*chi.Mux](i), Version)
		api.UseMiddleware(middleware.RequestMeta(logger, newID))
		api.UseMiddleware(middleware.APIKey(api, auth.NewVerifier(opts.APISecretKey), logger))
		api.UseMiddleware(middleware.RateLimiter(
			api,
			do.MustInvoke[*ratelimit.EndpointLimiter](i),
			do.MustInvoke[ratelimit.Limiter](i),
			logger,
		))

		g := do.MustInvoke[*gate.Gate](i)
		ops := gate.Operations()

		handlers.RegisterRoutes(api, ops, handlers.Routes{
			Telegram: handlers.NewTelegramHandler(g),
			Webhook: handlers.NewWebhookHandler(
				do.MustInvoke[messaging.Publish[updates.Received]](i),
				opts.WebhookSecret,
				logger,
			),
			Index: handlers.NewIndexHandler(ops),
		})

		var checker health.Checker
		if opts.RateLimitStore == StoreRedis {
			checker = health.NewRedisChecker(do.MustInvoke[*Redis](i).Client)
		}

		health.RegisterRoutes(api, health.NewHandler(health.Info{
			Version:        Version,
			Environment:    opts.Environment,
			RateLimitStore: storeName(opts.RateLimitStore),
			StartedAt:      time.Now(),
		}, checker))

		return api, nil
	})
}

func storeName(s string) string {
	if s == "" {
		return StoreMemory
	}

	return s
}
