package handler

import (
	"errors"

	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

type companyRequest struct {
	CompanyName        string  `json:"company_name" form:"company_name"`
	CompanyDescription *string `json:"company_description" form:"company_description"`
	Industry           *string `json:"industry" form:"industry"`
	Website            *string `json:"website" form:"website"`
	Location           *string `json:"location" form:"location"`
	EmployeeCount      *string `json:"employee_count" form:"employee_count"`
	FoundedYear        *int    `json:"founded_year" form:"founded_year"`
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) Mine(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	co, err := h.uc.Mine(c.Context(), u.ID)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	if co == nil {
		return response.Success(c, fiber.StatusOK, "No company profile found", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompany(*co))
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id", "Invalid company id")
	if err != nil {
		return err
	}
	co, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromCompany(co))
}

func (h *CompanyHandler) Save(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	var req companyRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	in := usecase.CompanyInput{
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		Industry:           req.Industry,
		Website:            req.Website,
		Location:           req.Location,
		EmployeeCount:      req.EmployeeCount,
		FoundedYear:        req.FoundedYear,
	}
	if isMultipart(c) {
		if in.Logo, err = formUpload(c, "logo"); err != nil {
			return err
		}
	}

	co, created, err := h.uc.Save(c.Context(), u.ID, in)
	if err != nil {
		return mapCompanyUsecaseError(err)
	}
	if created {
		return response.Success(c, fiber.StatusCreated, "Company profile created successfully", dto.FromCompany(co))
	}
	return response.Success(c, fiber.StatusOK, "Company profile updated successfully", dto.FromCompany(co))
}

func mapCompanyUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}
	if errors.Is(err, usecase.ErrCompanyNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, "Company not found", nil, err)
	}
	return internalError(err)
}
