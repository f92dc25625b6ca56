package response

import (
	"encoding/json"
	"net/http"
	"time"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Envelope is the body returned by every endpoint.
type Envelope struct {
	Success   bool   `doc:"Whether the operation succeeded"       json:"success"`
	Data      any    `doc:"Operation result"                      json:"data"`
	Message   string `doc:"Human readable outcome"                json:"message"`
	Detail    any    `doc:"Error detail, null on success"         json:"error"`
	ErrorCode int    `doc:"Error code reported by the Bot API"    json:"error_code,omitempty"`
	Timestamp string `doc:"Response time (RFC 3339, UTC)"         json:"timestamp"`
}

// Output is a huma response carrying an envelope and its HTTP status.
type Output struct {
	Status int
	Body   Envelope
}

// now is replaced in tests.
var now = time.Now

// Success builds a successful envelope.
func Success(data any, message string) Envelope {
	return Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: timestamp(),
	}
}

// Failure builds a failed envelope. The error field is null when errDetail is empty.
func Failure(message, errDetail string) Envelope {
	env := Envelope{
		Success:   false,
		Message:   message,
		Timestamp: timestamp(),
	}

	if errDetail != "" {
		env.Detail = errDetail
	}

	return env
}

// OK wraps a successful envelope in a 200 output.
func OK(data any, message string) *Output {
	return &Output{Status: http.StatusOK, Body: Success(data, message)}
}

// Fail wraps a failed envelope in an output with the given status.
func Fail(status int, message, errDetail string) *Output {
	return &Output{Status: status, Body: Failure(message, errDetail)}
}

// WriteJSON writes an envelope outside of huma (router-level handlers).
func WriteJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func timestamp() string {
	return now().UTC().Format(timestampLayout)
}
