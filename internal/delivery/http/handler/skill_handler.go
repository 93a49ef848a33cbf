package handler

import (
	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/categories", h.Categories)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), c.Query("category"))
	if err != nil {
		return internalError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, slice.Map(items, dto.FromSkill))
}

func (h *SkillHandler) Categories(c fiber.Ctx) error {
	items, err := h.uc.Categories(c.Context())
	if err != nil {
		return internalError(err)
	}
	if items == nil {
		items = []string{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
