package handlers

import (
	"context"

	"github.com/serroba/telegram-bff/internal/gate"
	"github.com/serroba/telegram-bff/internal/response"
)

// TelegramHandler serves operations forwarded to the Bot API.
type TelegramHandler struct {
	gate *gate.Gate
}

// NewTelegramHandler creates a handler dispatching through g.
func NewTelegramHandler(g *gate.Gate) *TelegramHandler {
	return &TelegramHandler{gate: g}
}

// Body returns the POST handler for op.
func (h *TelegramHandler) Body(op gate.Operation) func(context.Context, *BodyInput) (*response.Output, error) {
	return func(ctx context.Context, in *BodyInput) (*response.Output, error) {
		return h.gate.Run(ctx, op, gate.Params(in.Body)), nil
	}
}

// Query returns the GET handler for op, reading the token from the query string.
func (h *TelegramHandler) Query(op gate.Operation) func(context.Context, *QueryInput) (*response.Output, error) {
	return func(ctx context.Context, in *QueryInput) (*response.Output, error) {
		return h.gate.Run(ctx, op, gate.Params{"token": in.Token}), nil
	}
}

// Execute dispatches the body's action to the matching operation.
func (h *TelegramHandler) Execute(ctx context.Context, in *BodyInput) (*response.Output, error) {
	return h.gate.Execute(ctx, gate.Params(in.Body)), nil
}
