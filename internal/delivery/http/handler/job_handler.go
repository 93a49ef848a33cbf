package handler

import (
	"errors"
	"time"

	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

type createJobRequest struct {
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	JobType            string     `json:"job_type"`
	Category           string     `json:"category"`
	Location           *string    `json:"location"`
	SalaryMin          *float64   `json:"salary_min"`
	SalaryMax          *float64   `json:"salary_max"`
	SalaryCurrency     string     `json:"salary_currency"`
	ExperienceRequired *string    `json:"experience_required"`
	EducationRequired  *string    `json:"education_required"`
	ExpiresAt          *time.Time `json:"expires_at"`
	Skills             []int64    `json:"skills"`
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) List(c fiber.Ctx) error {
	minSalary, err := parseQueryFloat(c, "min_salary")
	if err != nil {
		return err
	}

	res, err := h.uc.List(c.Context(), usecase.JobListParams{
		Category:  c.Query("category"),
		JobType:   c.Query("job_type"),
		Location:  c.Query("location"),
		Search:    c.Query("search"),
		MinSalary: minSalary,
		Page:      parseQueryInt(c, "page", 1),
		Limit:     parseQueryInt(c, "limit", usecase.DefaultPageLimit),
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}

	items := slice.Map(res.Jobs, dto.FromJobWithSkills)
	return response.Paginated(c, response.MessageOK, items, response.NewPagination(res.Page, res.Limit, res.Total))
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id", "Invalid job id")
	if err != nil {
		return err
	}
	d, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromJobDetail(d))
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id, err := h.uc.Create(c.Context(), u.ID, usecase.CreateJobInput{
		Title:              req.Title,
		Description:        req.Description,
		JobType:            req.JobType,
		Category:           req.Category,
		Location:           req.Location,
		SalaryMin:          req.SalaryMin,
		SalaryMax:          req.SalaryMax,
		SalaryCurrency:     req.SalaryCurrency,
		ExperienceRequired: req.ExperienceRequired,
		EducationRequired:  req.EducationRequired,
		ExpiresAt:          req.ExpiresAt,
		SkillIDs:           req.Skills,
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job posted successfully", fiber.Map{"job_id": id})
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	rows, err := h.uc.ListMine(c.Context(), u.ID)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, slice.Map(rows, dto.FromJobWithSkills))
}

func (h *JobHandler) Close(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "Invalid job id")
	if err != nil {
		return err
	}
	if err := h.uc.Close(c.Context(), u.ID, id); err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job closed", nil)
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	default:
		return internalError(err)
	}
}
