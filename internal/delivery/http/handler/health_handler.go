package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"devconnect/internal/database"
	"devconnect/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			return response.Msg(c, fiber.StatusServiceUnavailable, "database unreachable")
		}
	}
	return response.Msg(c, fiber.StatusOK, "ok")
}
