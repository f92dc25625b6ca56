package response

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// StatusError is an envelope that huma can render as an error response.
type StatusError struct {
	status int
	Envelope
}

// NewError builds a StatusError. It matches the signature of huma.NewError.
// Schema validation failures (422) are reported as 400.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]string, 0, len(errs))

	for _, err := range errs {
		if err == nil {
			continue
		}

		details = append(details, err.Error())
	}

	return &StatusError{
		status:   status,
		Envelope: Failure(msg, strings.Join(details, "; ")),
	}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if detail, ok := e.Detail.(string); ok && detail != "" {
		return e.Message + ": " + detail
	}

	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *StatusError) GetStatus() int {
	return e.status
}

// Install makes huma render every framework error as an envelope.
func Install() {
	huma.NewError = NewError
}
