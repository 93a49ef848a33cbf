package handler

import (
	"errors"

	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/domain/job"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	uc usecase.AdminUsecase
}

type userStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/analytics", h.Analytics)
	r.Get("/users", h.Users)
	r.Patch("/users/:userId/status", h.SetUserStatus)
	r.Get("/jobs", h.Jobs)
	r.Patch("/jobs/:jobId/status", h.SetJobStatus)
	r.Delete("/jobs/:jobId", h.DeleteJob)
	r.Get("/logs", h.Logs)
}

func (h *AdminHandler) Analytics(c fiber.Ctx) error {
	out, err := h.uc.Analytics(c.Context())
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AdminHandler) Users(c fiber.Ctx) error {
	page, err := h.uc.Users(c.Context(), usecase.AdminUserFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   parseQueryInt(c, "page", 1),
		Limit:  parseQueryInt(c, "limit", usecase.DefaultPageLimit),
	})
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	items := slice.Map(page.Items, func(_ int, u user.User) dto.UserResponse { return dto.FromUser(u) })
	return response.Paginated(c, response.MessageOK, items, response.NewPagination(page.Page, page.Limit, page.Total))
}

func (h *AdminHandler) SetUserStatus(c fiber.Ctx) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	userID, err := paramID(c, "userId", "Invalid user id")
	if err != nil {
		return err
	}
	var req userStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.SetUserStatus(c.Context(), admin, userID, req.IsActive); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "User status updated successfully", nil)
}

func (h *AdminHandler) Jobs(c fiber.Ctx) error {
	page, err := h.uc.Jobs(c.Context(), usecase.AdminJobFilter{
		Status: c.Query("status"),
		Page:   parseQueryInt(c, "page", 1),
		Limit:  parseQueryInt(c, "limit", usecase.DefaultPageLimit),
	})
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	items := slice.Map(page.Items, func(i int, j job.Job) dto.JobResponse { return dto.FromJob(i, j) })
	return response.Paginated(c, response.MessageOK, items, response.NewPagination(page.Page, page.Limit, page.Total))
}

func (h *AdminHandler) SetJobStatus(c fiber.Ctx) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "jobId", "Invalid job id")
	if err != nil {
		return err
	}
	var req jobStatusRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.uc.SetJobStatus(c.Context(), admin, jobID, req.Status); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job status updated successfully", nil)
}

func (h *AdminHandler) DeleteJob(c fiber.Ctx) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "jobId", "Invalid job id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteJob(c.Context(), admin, jobID); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted successfully", nil)
}

func (h *AdminHandler) Logs(c fiber.Ctx) error {
	page, err := h.uc.Logs(c.Context(), parseQueryInt(c, "page", 1), parseQueryInt(c, "limit", usecase.DefaultPageLimit))
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	items := slice.Map(page.Items, dto.FromAdminLog)
	return response.Paginated(c, response.MessageOK, items, response.NewPagination(page.Page, page.Limit, page.Total))
}

func mapAdminUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrCannotDeactivateSelf):
		return middleware.NewAppError(fiber.StatusBadRequest, "You cannot deactivate your own account", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return internalError(err)
	}
}
