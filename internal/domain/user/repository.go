package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type ListFilter struct {
	Role   *Role
	Search string
	Limit  int
	Offset int
}

type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	ProfilePhoto *string

	Bio             *string
	CurrentPosition *string
	ExperienceYears *int
	EducationLevel  *string
	Location        *string
	ResumePath      *string
	ResumeText      *string
}

type Repository interface {
	// Create inserts the user and, for job seekers, an empty seeker profile in
	// the same transaction.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetSeekerProfile(ctx context.Context, userID int64) (SeekerProfile, error)
	UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetPasswordHash(ctx context.Context, id int64, hash string) error
	List(ctx context.Context, f ListFilter) ([]User, error)
	Count(ctx context.Context, f ListFilter) (int64, error)
}
