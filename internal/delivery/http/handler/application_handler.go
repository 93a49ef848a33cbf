package handler

import (
	"errors"

	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	JobID       int64   `json:"job_id"`
	CoverLetter *string `json:"cover_letter"`
}

type applicationStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	var req applyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id, err := h.uc.Apply(c.Context(), u.ID, usecase.ApplyInput{JobID: req.JobID, CoverLetter: req.CoverLetter})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted successfully", fiber.Map{"application_id": id})
}

func (h *ApplicationHandler) Mine(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	rows, err := h.uc.MyApplications(c.Context(), u.ID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, slice.Map(rows, dto.FromSeekerApplication))
}

func (h *ApplicationHandler) ListForJob(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "jobId", "Invalid job id")
	if err != nil {
		return err
	}
	rows, err := h.uc.ListForJob(c.Context(), u.ID, jobID)
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, slice.Map(rows, dto.FromApplicant))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "Invalid application id")
	if err != nil {
		return err
	}
	var req applicationStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	err = h.uc.UpdateStatus(c.Context(), u.ID, id, usecase.ApplicationStatusInput{Status: req.Status, Notes: req.Notes})
	if err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application status updated", nil)
}

func (h *ApplicationHandler) Withdraw(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "Invalid application id")
	if err != nil {
		return err
	}
	if err := h.uc.Withdraw(c.Context(), u.ID, id); err != nil {
		return mapApplicationUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Application withdrawn", nil)
}

func mapApplicationUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotAccepting):
		return middleware.NewAppError(fiber.StatusBadRequest, "Job is not accepting applications", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job", nil, err)
	case errors.Is(err, usecase.ErrJobAccessDenied):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found or access denied", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found or access denied", nil, err)
	case errors.Is(err, usecase.ErrNotWithdrawable):
		return middleware.NewAppError(fiber.StatusBadRequest, "Application can no longer be withdrawn", nil, err)
	default:
		return internalError(err)
	}
}
