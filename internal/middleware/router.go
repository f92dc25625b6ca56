package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/serroba/telegram-bff/internal/response"
)

// Messages written by router-level handlers.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgNotFound         = "Not found"
)

const (
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsAllowHeaders = "X-Requested-With, Content-Type, Accept, Authorization, X-API-Key"
	corsMaxAge       = "86400"
)

// CORS sets the cross-origin headers on every response and answers
// preflight requests with an empty 200.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if wildcard || (origin != "" && slices.Contains(allowedOrigins, origin)) {
				if origin == "" {
					origin = "*"
				}

				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
			w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
			w.Header().Set("Access-Control-Max-Age", corsMaxAge)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ParseOrigins splits a comma separated origin list.
func ParseOrigins(s string) []string {
	var origins []string

	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}

// MethodNotAllowed answers requests whose path exists under another method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusMethodNotAllowed, response.Failure(MsgMethodNotAllowed, ""))
}

// NotFound answers requests for unknown paths.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusNotFound, response.Failure(MsgNotFound, ""))
}
