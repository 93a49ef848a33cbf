package dto

import (
	"time"

	"skill-hire/internal/domain/user"
)

type UserResponse struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        *string   `json:"phone"`
	ProfilePhoto *string   `json:"profile_photo"`
	IsVerified   bool      `json:"is_verified"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type SeekerProfileResponse struct {
	Bio             *string `json:"bio"`
	CurrentPosition *string `json:"current_position"`
	ExperienceYears int     `json:"experience_years"`
	EducationLevel  *string `json:"education_level"`
	Location        *string `json:"location"`
	ResumePath      *string `json:"resume_path"`
	HasResumeText   bool    `json:"has_resume_text"`
}

// AccountResponse is a user with the profile that belongs to its role.
type AccountResponse struct {
	UserResponse
	Profile *SeekerProfileResponse `json:"profile,omitempty"`
	Company *CompanyResponse       `json:"company,omitempty"`
}

type AuthResponse struct {
	UserID int64        `json:"user_id"`
	Email  string       `json:"email"`
	Role   string       `json:"role"`
	Token  string       `json:"token"`
	User   UserResponse `json:"user"`
}

func FromUser(u user.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role.String(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		ProfilePhoto: u.ProfilePhoto,
		IsVerified:   u.IsVerified,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

func FromSeekerProfile(p user.SeekerProfile) SeekerProfileResponse {
	return SeekerProfileResponse{
		Bio:             p.Bio,
		CurrentPosition: p.CurrentPosition,
		ExperienceYears: p.ExperienceYears,
		EducationLevel:  p.EducationLevel,
		Location:        p.Location,
		ResumePath:      p.ResumePath,
		HasResumeText:   p.ResumeText != nil && *p.ResumeText != "",
	}
}
