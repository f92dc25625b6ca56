package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/telegram-bff/internal/container"
	"github.com/serroba/telegram-bff/internal/messaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var api huma.API

	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		container.Register(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)
		router := do.MustInvoke[*chi.Mux](injector)

		// Invoke API to trigger route registration
		api = do.MustInvoke[huma.API](injector)

		var server *http.Server

		hooks.OnStart(func() {
			group := do.MustInvoke[*messaging.ConsumerGroup](injector)
			if err := group.Start(context.Background()); err != nil {
				logger.Fatal("failed to start consumer group", zap.Error(err))
			}

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("server starting",
				zap.Int("port", options.Port),
				zap.String("rate_limit_store", options.RateLimitStore),
				zap.Bool("api_key_configured", options.APISecretKey != ""),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			logger.Info("shutdown complete")
			_ = logger.Sync()
		})
	})

	cli.Root().AddCommand(&cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Run: func(cmd *cobra.Command, _ []string) {
			b, err := api.OpenAPI().YAML()
			if err != nil {
				cmd.PrintErrln(err)

				return
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
		},
	})

	cli.Run()
}
