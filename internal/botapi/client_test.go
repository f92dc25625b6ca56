package botapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/serroba/telegram-bff/internal/botapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "123456:ABCDEFGHIJ0123456789abcdefghij01234"

type capturedRequest struct {
	method      string
	path        string
	contentType string
	userAgent   string
	body        map[string]any
}

func newTelegramServer(t *testing.T, status int, response string, captured *capturedRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.method = r.Method
			captured.path = r.URL.Path
			captured.contentType = r.Header.Get("Content-Type")
			captured.userAgent = r.Header.Get("User-Agent")

			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &captured.body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	return server
}

func newClient(baseURL string) *botapi.Client {
	return botapi.NewClient(zap.NewNop(), botapi.WithBaseURL(baseURL))
}

func TestClient_Invoke(t *testing.T) {
	t.Run("posts json to bot path and returns result", func(t *testing.T) {
		var captured capturedRequest

		server := newTelegramServer(t, http.StatusOK, `{"ok":true,"result":{"message_id":42}}`, &captured)
		client := newClient(server.URL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodSendMessage, map[string]any{
			"chat_id": 1,
			"text":    "hi",
		})

		assert.True(t, env.Success)
		assert.JSONEq(t, `{"message_id":42}`, string(env.Data))
		assert.Empty(t, env.Error)
		assert.Equal(t, http.StatusOK, env.Status)

		assert.Equal(t, http.MethodPost, captured.method)
		assert.Equal(t, "/bot"+testToken+"/sendMessage", captured.path)
		assert.Equal(t, "application/json", captured.contentType)
		assert.Equal(t, "BotHost-Backend/1.0", captured.userAgent)
		assert.Equal(t, "hi", captured.body["text"])
	})

	t.Run("sends empty object when payload is nil", func(t *testing.T) {
		var captured capturedRequest

		server := newTelegramServer(t, http.StatusOK, `{"ok":true,"result":{"id":1}}`, &captured)
		client := newClient(server.URL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.True(t, env.Success)
		assert.NotNil(t, captured.body)
		assert.Empty(t, captured.body)
	})

	t.Run("passes remote rejection through", func(t *testing.T) {
		server := newTelegramServer(t, http.StatusBadRequest,
			`{"ok":false,"description":"Bad Request: chat not found","error_code":400}`, nil)
		client := newClient(server.URL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodSendMessage, map[string]any{})

		assert.False(t, env.Success)
		assert.False(t, env.Failed())
		assert.Nil(t, env.Data)
		assert.Equal(t, "Bad Request: chat not found", env.Error)
		assert.Equal(t, 400, env.ErrorCode)
		assert.Equal(t, http.StatusBadRequest, env.Status)
	})

	t.Run("folds 5xx into failure envelope", func(t *testing.T) {
		server := newTelegramServer(t, http.StatusBadGateway, `<html>bad gateway</html>`, nil)
		client := newClient(server.URL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.False(t, env.Success)
		assert.True(t, env.Failed())
		assert.Equal(t, http.StatusBadGateway, env.ErrorCode)
		assert.Contains(t, env.Error, "502")
	})

	t.Run("uses remote description on 5xx when decodable", func(t *testing.T) {
		server := newTelegramServer(t, http.StatusInternalServerError,
			`{"ok":false,"description":"Internal Server Error","error_code":500}`, nil)
		client := newClient(server.URL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.True(t, env.Failed())
		assert.Equal(t, "Internal Server Error", env.Error)
		assert.Equal(t, 500, env.ErrorCode)
	})

	t.Run("folds malformed body into failure envelope", func(t *testing.T) {
		server := newTelegramServer(t, http.StatusOK, `not json`, nil)
		client := newClient(server.URL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.False(t, env.Success)
		assert.True(t, env.Failed())
		assert.Equal(t, http.StatusInternalServerError, env.ErrorCode)
		assert.Equal(t, botapi.ErrMalformedResponse.Error(), env.Error)
	})

	t.Run("folds transport error without leaking token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		baseURL := server.URL
		server.Close()

		client := newClient(baseURL)

		env := client.Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.False(t, env.Success)
		assert.True(t, env.Failed())
		assert.Equal(t, http.StatusInternalServerError, env.ErrorCode)
		assert.NotContains(t, env.Error, testToken)
	})

	t.Run("transport failure and remote rejection share envelope shape", func(t *testing.T) {
		server := newTelegramServer(t, http.StatusOK, `{"ok":false,"description":"x","error_code":400}`, nil)
		rejected := newClient(server.URL).Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		down := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		downURL := down.URL
		down.Close()

		failed := newClient(downURL).Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.False(t, rejected.Success)
		assert.False(t, failed.Success)
		assert.Equal(t, "x", rejected.Error)
		assert.Equal(t, 400, rejected.ErrorCode)
		assert.NotEqual(t, rejected.Error, failed.Error)
		assert.NotEqual(t, rejected.ErrorCode, failed.ErrorCode)
	})

	t.Run("reports timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		t.Cleanup(server.Close)
		t.Cleanup(func() { close(release) })

		client := botapi.NewClient(zap.NewNop(),
			botapi.WithBaseURL(server.URL),
			botapi.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
		)

		env := client.Invoke(context.Background(), testToken, botapi.MethodGetMe, nil)

		assert.True(t, env.Failed())
		assert.True(t, strings.Contains(env.Error, "timed out"), "got %q", env.Error)
	})

	t.Run("does not abort when caller context is cancelled", func(t *testing.T) {
		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
		}))
		t.Cleanup(server.Close)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		env := newClient(server.URL).Invoke(ctx, testToken, botapi.MethodDeleteMessage, nil)

		require.True(t, env.Success)
		assert.Equal(t, int32(1), calls.Load())
		assert.JSONEq(t, `true`, string(env.Data))
	})
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	var captured capturedRequest

	server := newTelegramServer(t, http.StatusOK, `{"ok":true,"result":{}}`, &captured)

	env := newClient(server.URL+"/").Invoke(context.Background(), testToken, botapi.MethodGetWebhookInfo, nil)

	assert.True(t, env.Success)
	assert.Equal(t, "/bot"+testToken+"/getWebhookInfo", captured.path)
}
