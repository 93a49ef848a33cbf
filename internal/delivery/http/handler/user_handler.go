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

type UserHandler struct {
	users  usecase.UserUsecase
	skills usecase.UserSkillUsecase
	saved  usecase.SavedJobUsecase
}

// Text fields arrive either as JSON or as multipart form values next to
// the profile_photo and resume files.
type updateProfileRequest struct {
	FirstName       *string `json:"first_name" form:"first_name"`
	LastName        *string `json:"last_name" form:"last_name"`
	Phone           *string `json:"phone" form:"phone"`
	Bio             *string `json:"bio" form:"bio"`
	CurrentPosition *string `json:"current_position" form:"current_position"`
	ExperienceYears *int    `json:"experience_years" form:"experience_years"`
	EducationLevel  *string `json:"education_level" form:"education_level"`
	Location        *string `json:"location" form:"location"`
}

type addUserSkillRequest struct {
	SkillID           int64  `json:"skill_id"`
	ProficiencyLevel  string `json:"proficiency_level"`
	YearsOfExperience int    `json:"years_of_experience"`
}

type saveJobRequest struct {
	JobID int64 `json:"job_id"`
}

func NewUserHandler(users usecase.UserUsecase, skills usecase.UserSkillUsecase, saved usecase.SavedJobUsecase) *UserHandler {
	return &UserHandler{users: users, skills: skills, saved: saved}
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	acc, err := h.users.Profile(c.Context(), u.ID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, accountResponse(acc))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.UpdateProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Bio:             req.Bio,
		CurrentPosition: req.CurrentPosition,
		ExperienceYears: req.ExperienceYears,
		EducationLevel:  req.EducationLevel,
		Location:        req.Location,
	}
	if isMultipart(c) {
		if in.ProfilePhoto, err = formUpload(c, "profile_photo"); err != nil {
			return err
		}
		if in.Resume, err = formUpload(c, "resume"); err != nil {
			return err
		}
	}

	acc, err := h.users.UpdateProfile(c.Context(), u, in)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated successfully", accountResponse(acc))
}

func (h *UserHandler) ListSkills(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	items, err := h.skills.List(c.Context(), u.ID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, slice.Map(items, dto.FromUserSkill))
}

func (h *UserHandler) AddSkill(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	var req addUserSkillRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.skills.Add(c.Context(), u.ID, usecase.AddUserSkillInput{
		SkillID:           req.SkillID,
		ProficiencyLevel:  req.ProficiencyLevel,
		YearsOfExperience: req.YearsOfExperience,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Skill added successfully", dto.FromUserSkill(0, out))
}

func (h *UserHandler) RemoveSkill(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	skillID, err := paramID(c, "skillId", "Invalid skill id")
	if err != nil {
		return err
	}
	if err := h.skills.Remove(c.Context(), u.ID, skillID); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Skill removed successfully", nil)
}

func (h *UserHandler) SkillSuggestions(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	res, err := h.skills.Suggestions(c.Context(), u.ID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	msg := res.Message
	if msg == "" {
		msg = response.MessageOK
	}
	return response.Success(c, fiber.StatusOK, msg, slice.Map(res.Skills, dto.FromSkill))
}

func (h *UserHandler) ListSavedJobs(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	rows, err := h.saved.List(c.Context(), u.ID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, slice.Map(rows, dto.FromSavedJob))
}

func (h *UserHandler) SaveJob(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	var req saveJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.saved.Save(c.Context(), u.ID, req.JobID); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job saved successfully", nil)
}

func (h *UserHandler) RemoveSavedJob(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := paramID(c, "jobId", "Invalid job id")
	if err != nil {
		return err
	}
	if err := h.saved.Remove(c.Context(), u.ID, jobID); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job removed from saved list", nil)
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found in profile", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrSavedJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Saved job not found", nil, err)
	default:
		return internalError(err)
	}
}
