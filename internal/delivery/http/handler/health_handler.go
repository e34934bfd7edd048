package handler

import (
	"context"
	"time"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything whose liveness the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := map[string]any{"database": "ok"}
	if h.db == nil {
		data["database"] = "memory"
		return response.Success(c, fiber.StatusOK, response.MessageOK, data)
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		data["database"] = "unavailable"
		return response.Error(c, fiber.StatusServiceUnavailable, "service unavailable", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
