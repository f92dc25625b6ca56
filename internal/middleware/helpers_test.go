package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/telegram-bff/internal/response"
	"github.com/stretchr/testify/require"
)

type pingOutput struct {
	Body struct {
		OK bool `json:"ok"`
	}
}

func newTestAPI(t *testing.T) (*chi.Mux, huma.API) {
	t.Helper()

	response.Install()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))

	return router, api
}

func registerPing(api huma.API, path string, metadata map[string]any) {
	huma.Register(api, huma.Operation{
		OperationID: "ping" + path,
		Method:      http.MethodPost,
		Path:        path,
		Metadata:    metadata,
	}, func(_ context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.OK = true

		return out, nil
	})
}

func post(router http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())

	return env
}
