package dto

import (
	"time"

	"skill-hire/internal/domain/job"
	"skill-hire/internal/repository"
	"skill-hire/internal/usecase"

	"github.com/ecodeclub/ekit/slice"
)

type JobSkillResponse struct {
	SkillID    int64  `json:"skill_id"`
	SkillName  string `json:"skill_name"`
	Category   string `json:"category"`
	IsRequired bool   `json:"is_required"`
}

type JobResponse struct {
	ID                 int64              `json:"id"`
	EmployerID         int64              `json:"employer_id"`
	CompanyID          *int64             `json:"company_id"`
	CompanyName        *string            `json:"company_name"`
	CompanyLogo        *string            `json:"company_logo"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	JobType            string             `json:"job_type"`
	Category           string             `json:"category"`
	Location           *string            `json:"location"`
	SalaryMin          *float64           `json:"salary_min"`
	SalaryMax          *float64           `json:"salary_max"`
	SalaryCurrency     string             `json:"salary_currency"`
	ExperienceRequired *string            `json:"experience_required"`
	EducationRequired  *string            `json:"education_required"`
	Status             string             `json:"status"`
	ViewsCount         int                `json:"views_count"`
	ApplicationsCount  int                `json:"applications_count"`
	PostedAt           time.Time          `json:"posted_at"`
	ExpiresAt          *time.Time         `json:"expires_at"`
	CreatedAt          time.Time          `json:"created_at"`
	Skills             []JobSkillResponse `json:"skills,omitempty"`
}

type JobDetailResponse struct {
	JobResponse
	Company *CompanyResponse `json:"company"`
}

type RecommendationResponse struct {
	JobResponse
	MatchScore    int     `json:"match_score"`
	MatchedSkills []int64 `json:"matched_skills"`
}

type SavedJobResponse struct {
	JobResponse
	SavedAt time.Time `json:"saved_at"`
}

func FromJob(_ int, j job.Job) JobResponse {
	return JobResponse{
		ID:                 j.ID,
		EmployerID:         j.EmployerID,
		CompanyID:          j.CompanyID,
		CompanyName:        j.CompanyName,
		CompanyLogo:        j.CompanyLogo,
		Title:              j.Title,
		Description:        j.Description,
		JobType:            j.JobType,
		Category:           j.Category,
		Location:           j.Location,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		SalaryCurrency:     j.SalaryCurrency,
		ExperienceRequired: j.ExperienceRequired,
		EducationRequired:  j.EducationRequired,
		Status:             string(j.Status),
		ViewsCount:         j.ViewsCount,
		ApplicationsCount:  j.ApplicationsCount,
		PostedAt:           j.PostedAt,
		ExpiresAt:          j.ExpiresAt,
		CreatedAt:          j.CreatedAt,
	}
}

func fromRequirement(_ int, r job.SkillRequirement) JobSkillResponse {
	return JobSkillResponse{SkillID: r.SkillID, SkillName: r.SkillName, Category: r.Category, IsRequired: r.IsRequired}
}

func FromJobWithSkills(i int, j usecase.JobWithSkills) JobResponse {
	out := FromJob(i, j.Job)
	out.Skills = slice.Map(j.Skills, fromRequirement)
	return out
}

func FromJobDetail(d usecase.JobDetail) JobDetailResponse {
	out := JobDetailResponse{JobResponse: FromJobWithSkills(0, d.JobWithSkills)}
	if d.Company != nil {
		c := FromCompany(*d.Company)
		out.Company = &c
	}
	return out
}

func FromRecommendation(i int, r usecase.Recommendation) RecommendationResponse {
	matched := r.MatchedSkills
	if matched == nil {
		matched = []int64{}
	}
	return RecommendationResponse{
		JobResponse:   FromJobWithSkills(i, r.JobWithSkills),
		MatchScore:    r.MatchScore,
		MatchedSkills: matched,
	}
}

func FromSavedJob(i int, s repository.SavedJob) SavedJobResponse {
	return SavedJobResponse{JobResponse: FromJob(i, s.Job), SavedAt: s.SavedAt}
}
