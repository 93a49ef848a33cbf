package handler

import (
	"errors"

	"skill-hire/internal/delivery/http/dto"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/pkg/response"
	"skill-hire/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     *string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterRoutes mounts the auth routes; loginLimiter guards only /login.
func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw, loginLimiter fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	if loginLimiter != nil {
		r.Post("/login", loginLimiter, h.Login)
	} else {
		r.Post("/login", h.Login)
	}
	r.Get("/me", authMw, h.Me)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Register(c.Context(), usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "User registered successfully", authResponse(res))
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Login(c.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Login successful", authResponse(res))
}

func (h *AuthHandler) Me(c fiber.Ctx) error {
	u, err := currentUser(c)
	if err != nil {
		return err
	}
	acc, err := h.uc.Me(c.Context(), u.ID)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, accountResponse(acc))
}

func authResponse(res usecase.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		UserID: res.User.ID,
		Email:  res.User.Email,
		Role:   res.User.Role.String(),
		Token:  res.Token,
		User:   dto.FromUser(res.User),
	}
}

func accountResponse(acc usecase.Account) dto.AccountResponse {
	out := dto.AccountResponse{UserResponse: dto.FromUser(acc.User)}
	if acc.Seeker != nil {
		p := dto.FromSeekerProfile(*acc.Seeker)
		out.Profile = &p
	}
	if acc.Company != nil {
		c := dto.FromCompany(*acc.Company)
		out.Company = &c
	}
	return out
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := commonError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, usecase.ErrAccountDeactivated):
		return middleware.NewAppError(fiber.StatusForbidden, "Account is deactivated", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return internalError(err)
	}
}
