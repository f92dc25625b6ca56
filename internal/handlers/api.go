package handlers

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/serroba/telegram-bff/internal/auth"
	"github.com/serroba/telegram-bff/internal/middleware"
	"github.com/serroba/telegram-bff/internal/response"
)

// Title is the API title published in the OpenAPI document.
const Title = "Telegram Bot Backend API"

const apiKeyScheme = "apiKey"

// NewRouter creates the chi router with recovery, CORS and envelope
// responses for unknown paths and methods.
func NewRouter(allowedOrigins []string) *chi.Mux {
	router := chi.NewMux()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.CORS(allowedOrigins))
	router.NotFound(middleware.NotFound)
	router.MethodNotAllowed(middleware.MethodNotAllowed)

	return router
}

// NewAPI creates the huma API on router. Framework errors render as envelopes.
func NewAPI(router chi.Router, version string) huma.API {
	response.Install()

	config := huma.DefaultConfig(Title, version)
	config.Info.Description = "Gated access to the Telegram Bot API."
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		apiKeyScheme: {
			Type: "apiKey",
			In:   "header",
			Name: auth.HeaderAPIKey,
		},
	}

	return humachi.New(router, config)
}

var apiKeySecurity = []map[string][]string{{apiKeyScheme: {}}}
