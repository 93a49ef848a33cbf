package application

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

var ErrUnknownStatus = fmt.Errorf("unknown application status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusReviewing, StatusAccepted, StatusRejected, StatusWithdrawn:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Withdrawable reports whether the applicant may still pull the application.
func (s Status) Withdrawable() bool {
	switch s {
	case StatusPending, StatusReviewing:
		return true
	case StatusAccepted, StatusRejected, StatusWithdrawn:
		return false
	default:
		return false
	}
}

type Application struct {
	ID          int64
	JobID       int64
	JobSeekerID int64
	CoverLetter *string
	Status      Status
	Notes       *string
	AppliedAt   time.Time
	ReviewedAt  *time.Time
	UpdatedAt   time.Time
}
