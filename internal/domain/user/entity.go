package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

var ErrUnknownRole = fmt.Errorf("unknown role")

// ParseRole is the only way a stored or submitted role string becomes a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleJobSeeker:
		return RoleJobSeeker, nil
	case RoleEmployer:
		return RoleEmployer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// SelfRegistrable reports whether the role may be chosen at sign-up.
func (r Role) SelfRegistrable() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return true
	case RoleAdmin:
		return false
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Phone        *string
	ProfilePhoto *string
	IsVerified   bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type SeekerProfile struct {
	UserID          int64
	Bio             *string
	CurrentPosition *string
	ExperienceYears int
	EducationLevel  *string
	Location        *string
	ResumePath      *string
	ResumeText      *string
	UpdatedAt       time.Time
}
