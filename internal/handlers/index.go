package handlers

import (
	"context"

	"github.com/serroba/telegram-bff/internal/gate"
	"github.com/serroba/telegram-bff/internal/response"
)

// IndexHandler lists the Telegram operations.
type IndexHandler struct {
	endpoints []string
}

// NewIndexHandler lists the paths of ops.
func NewIndexHandler(ops []gate.Operation) *IndexHandler {
	endpoints := make([]string, 0, len(ops))
	for _, op := range ops {
		endpoints = append(endpoints, op.Path)
	}

	return &IndexHandler{endpoints: endpoints}
}

func (h *IndexHandler) Get(_ context.Context, _ *struct{}) (*response.Output, error) {
	return response.OK(Index{Endpoints: h.endpoints}, Title), nil
}
