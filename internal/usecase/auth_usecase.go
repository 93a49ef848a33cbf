package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skill-hire/internal/domain/company"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/pkg/jwt"
	"skill-hire/internal/repository"
	ucauth "skill-hire/internal/usecase/auth"
)

type RegisterInput struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Phone     *string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  user.User
	Token string
}

// Account is a user together with the role-specific profile, if any.
type Account struct {
	User    user.User
	Seeker  *user.SeekerProfile
	Company *company.Company
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	Me(ctx context.Context, userID int64) (Account, error)
}

type Auth struct {
	users     user.Repository
	companies repository.CompanyRepository
	jwt       jwt.Service
	logger    *log.Logger

	comparePassword func(hash, pw string) bool
}

func NewAuthUsecase(users user.Repository, companies repository.CompanyRepository, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	return &Auth{users: users, companies: companies, jwt: jwtSvc, logger: logger, comparePassword: ucauth.ComparePassword}
}

func (u *Auth) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	email := ucauth.NormalizeEmail(in.Email)
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if email == "" || in.Password == "" || in.Role == "" || first == "" || last == "" {
		return AuthResult{}, invalid("Missing required fields")
	}
	if !ucauth.IsValidEmail(email) {
		return AuthResult{}, invalid("Invalid email format")
	}
	if !ucauth.IsValidPassword(in.Password) {
		return AuthResult{}, invalid("Password must be at least 6 characters")
	}
	role, err := user.ParseRole(in.Role)
	if err != nil || !role.SelfRegistrable() {
		return AuthResult{}, invalid("Invalid role")
	}

	if _, err := u.users.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return AuthResult{}, ErrInternal
	}

	hash, err := ucauth.HashPassword(in.Password)
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	created, err := u.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FirstName:    first,
		LastName:     last,
		Phone:        trimmedOrNil(in.Phone),
		IsActive:     true,
	})
	if err != nil {
		// lost a race with a concurrent sign-up
		if errors.Is(err, user.ErrEmailTaken) {
			return AuthResult{}, ErrEmailTaken
		}
		return AuthResult{}, ErrInternal
	}

	token, err := u.jwt.GenerateAccessToken(created.ID, created.Email, created.Role.String())
	if err != nil {
		return AuthResult{}, ErrInternal
	}

	if u.logger != nil {
		u.logger.Printf("[Auth] registered user_id=%d role=%s", created.ID, created.Role)
	}
	return AuthResult{User: sanitizeUser(created), Token: token}, nil
}

func (u *Auth) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	email := ucauth.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return AuthResult{}, invalid("Email and password are required")
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			u.comparePassword(ucauth.DummyHash(), in.Password)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, ErrInternal
	}
	if !u.comparePassword(usr.PasswordHash, in.Password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return AuthResult{}, ErrAccountDeactivated
	}

	token, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email, usr.Role.String())
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: sanitizeUser(usr), Token: token}, nil
}

func (u *Auth) Me(ctx context.Context, userID int64) (Account, error) {
	return loadAccount(ctx, u.users, u.companies, userID)
}

func loadAccount(ctx context.Context, users user.Repository, companies repository.CompanyRepository, userID int64) (Account, error) {
	usr, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Account{}, ErrUserNotFound
		}
		return Account{}, ErrInternal
	}

	acc := Account{User: sanitizeUser(usr)}
	switch usr.Role {
	case user.RoleJobSeeker:
		p, err := users.GetSeekerProfile(ctx, userID)
		if err != nil && !errors.Is(err, user.ErrNotFound) {
			return Account{}, ErrInternal
		}
		if err == nil {
			acc.Seeker = &p
		}
	case user.RoleEmployer:
		if companies == nil {
			break
		}
		c, err := companies.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return Account{}, ErrInternal
		}
		if err == nil {
			acc.Company = &c
		}
	case user.RoleAdmin:
	}
	return acc, nil
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
