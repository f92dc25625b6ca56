package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/serroba/telegram-bff/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) {
	t.Helper()

	restore := response.SetNow(func() time.Time {
		return time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.FixedZone("X", 3600))
	})
	t.Cleanup(restore)
}

func TestSuccess(t *testing.T) {
	fixedClock(t)

	raw, err := json.Marshal(response.Success(map[string]int{"id": 1}, "done"))

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"data": {"id": 1},
		"message": "done",
		"error": null,
		"timestamp": "2025-03-04T04:06:07.008Z"
	}`, string(raw))
}

func TestFailure(t *testing.T) {
	fixedClock(t)

	t.Run("null error when no detail", func(t *testing.T) {
		raw, err := json.Marshal(response.Failure("Unauthorized", ""))

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"success": false,
			"data": null,
			"message": "Unauthorized",
			"error": null,
			"timestamp": "2025-03-04T04:06:07.008Z"
		}`, string(raw))
	})

	t.Run("includes detail and code", func(t *testing.T) {
		env := response.Failure("Failed to send message", "Bad Request: chat not found")
		env.ErrorCode = 400

		raw, err := json.Marshal(env)

		require.NoError(t, err)
		assert.Contains(t, string(raw), `"error":"Bad Request: chat not found"`)
		assert.Contains(t, string(raw), `"error_code":400`)
	})
}

func TestOutputs(t *testing.T) {
	ok := response.OK("x", "fine")
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.True(t, ok.Body.Success)

	fail := response.Fail(http.StatusTooManyRequests, "Rate limit exceeded", "")
	assert.Equal(t, http.StatusTooManyRequests, fail.Status)
	assert.False(t, fail.Body.Success)
	assert.Nil(t, fail.Body.Detail)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	response.WriteJSON(w, http.StatusMethodNotAllowed, response.Failure("Method not allowed", ""))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var env response.Envelope

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Method not allowed", env.Message)
}

func TestNewError(t *testing.T) {
	t.Run("keeps status and joins details", func(t *testing.T) {
		err := response.NewError(http.StatusUnauthorized, "Unauthorized", errors.New("a"), nil, errors.New("b"))

		assert.Equal(t, http.StatusUnauthorized, err.GetStatus())
		assert.Equal(t, "Unauthorized: a; b", err.Error())
	})

	t.Run("reports validation failures as bad request", func(t *testing.T) {
		err := response.NewError(http.StatusUnprocessableEntity, "validation failed")

		assert.Equal(t, http.StatusBadRequest, err.GetStatus())
		assert.Equal(t, "validation failed", err.Error())
	})

	t.Run("marshals as envelope", func(t *testing.T) {
		raw, err := json.Marshal(response.NewError(http.StatusInternalServerError, "An error occurred", errors.New("boom")))

		require.NoError(t, err)
		assert.Contains(t, string(raw), `"success":false`)
		assert.Contains(t, string(raw), `"message":"An error occurred"`)
		assert.Contains(t, string(raw), `"error":"boom"`)
		assert.Contains(t, string(raw), `"timestamp"`)
	})
}
