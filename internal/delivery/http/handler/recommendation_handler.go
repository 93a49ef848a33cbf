package handler

import (
	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v3"
)

type JobRecommendationHandler struct {
	uc usecase.JobRecommendationUsecase
}

func NewJobRecommendationHandler(uc usecase.JobRecommendationUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

func (h *JobRecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	caller, err := currentUser(c)
	if err != nil {
		return err
	}
	userID, err := paramID(c, "userId", "Invalid user id")
	if err != nil {
		return err
	}

	res, err := h.uc.GetRecommendations(c.Context(), caller, userID)
	if err != nil {
		return mapJobRecommendationUsecaseError(err)
	}

	msg := res.Message
	if msg == "" {
		msg = response.MessageOK
	}
	return response.Success(c, fiber.StatusOK, msg, slice.Map(res.Jobs, dto.FromRecommendation))
}

func mapJobRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}
	return internalError(err)
}
