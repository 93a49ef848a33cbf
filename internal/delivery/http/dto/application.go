package dto

import (
	"time"

	"skill-hire/internal/repository"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
)

type SeekerApplicationResponse struct {
	ID          int64      `json:"id"`
	JobID       int64      `json:"job_id"`
	Status      string     `json:"status"`
	CoverLetter *string    `json:"cover_letter"`
	AppliedAt   time.Time  `json:"applied_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	JobTitle    string     `json:"job_title"`
	JobType     string     `json:"job_type"`
	JobLocation *string    `json:"job_location"`
	JobStatus   string     `json:"job_status"`
	CompanyName *string    `json:"company_name"`
	CompanyLogo *string    `json:"company_logo"`
}

type ApplicantResponse struct {
	ID              int64               `json:"id"`
	JobSeekerID     int64               `json:"job_seeker_id"`
	Status          string              `json:"status"`
	CoverLetter     *string             `json:"cover_letter"`
	Notes           *string             `json:"notes"`
	AppliedAt       time.Time           `json:"applied_at"`
	ReviewedAt      *time.Time          `json:"reviewed_at"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	Email           string              `json:"email"`
	Phone           *string             `json:"phone"`
	ProfilePhoto    *string             `json:"profile_photo"`
	Bio             *string             `json:"bio"`
	CurrentPosition *string             `json:"current_position"`
	ExperienceYears *int                `json:"experience_years"`
	ResumePath      *string             `json:"resume_path"`
	Skills          []UserSkillResponse `json:"skills"`
}

func FromSeekerApplication(_ int, a repository.SeekerApplication) SeekerApplicationResponse {
	return SeekerApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		Status:      string(a.Status),
		CoverLetter: a.CoverLetter,
		AppliedAt:   a.AppliedAt,
		ReviewedAt:  a.ReviewedAt,
		JobTitle:    a.JobTitle,
		JobType:     a.JobType,
		JobLocation: a.JobLocation,
		JobStatus:   a.JobStatus,
		CompanyName: a.CompanyName,
		CompanyLogo: a.CompanyLogo,
	}
}

func FromApplicant(_ int, a usecase.ApplicantWithSkills) ApplicantResponse {
	return ApplicantResponse{
		ID:              a.ID,
		JobSeekerID:     a.JobSeekerID,
		Status:          string(a.Status),
		CoverLetter:     a.CoverLetter,
		Notes:           a.Notes,
		AppliedAt:       a.AppliedAt,
		ReviewedAt:      a.ReviewedAt,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Email:           a.Email,
		Phone:           a.Phone,
		ProfilePhoto:    a.ProfilePhoto,
		Bio:             a.Bio,
		CurrentPosition: a.CurrentPosition,
		ExperienceYears: a.ExperienceYears,
		ResumePath:      a.ResumePath,
		Skills:          slice.Map(a.Skills, FromUserSkill),
	}
}
