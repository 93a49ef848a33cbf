package handler

import (
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	uc usecase.HealthUsecase
}

func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

// Check reports 503 when the database is unreachable; Redis is optional.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	st := h.uc.Check(c.Context())
	if !st.DatabaseHealthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Envelope{Success: false, Message: "degraded", Data: st})
	}
	return response.Success(c, fiber.StatusOK, "healthy", st)
}
