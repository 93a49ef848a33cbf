package job

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusClosed   Status = "closed"
	StatusRejected Status = "rejected"
)

var ErrUnknownStatus = fmt.Errorf("unknown job status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusActive, StatusClosed, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// AcceptsApplications is true only for active postings.
func (s Status) AcceptsApplications() bool {
	return s == StatusActive
}

const DefaultSalaryCurrency = "INR"

type Job struct {
	ID                 int64
	EmployerID         int64
	CompanyID          *int64
	Title              string
	Description        string
	JobType            string
	Category           string
	Location           *string
	SalaryMin          *float64
	SalaryMax          *float64
	SalaryCurrency     string
	ExperienceRequired *string
	EducationRequired  *string
	Status             Status
	ViewsCount         int
	ApplicationsCount  int
	PostedAt           time.Time
	ExpiresAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	CompanyName *string
	CompanyLogo *string
}

// SkillRequirement is one row of a job's required-skill set.
type SkillRequirement struct {
	JobID      int64
	SkillID    int64
	SkillName  string
	Category   string
	IsRequired bool
}
