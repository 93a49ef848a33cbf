package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"skill-hire/internal/domain/application"
	"skill-hire/internal/domain/skill"
	"skill-hire/internal/infrastructure/messaging"
	"skill-hire/internal/repository"

	"github.com/ecodeclub/ekit/slice"
)

type ApplyInput struct {
	JobID       int64
	CoverLetter *string
}

type ApplicationStatusInput struct {
	Status string
	Notes  *string
}

type ApplicantWithSkills struct {
	repository.Applicant
	Skills []skill.UserSkill
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, seekerID int64, in ApplyInput) (int64, error)
	MyApplications(ctx context.Context, seekerID int64) ([]repository.SeekerApplication, error)
	ListForJob(ctx context.Context, employerID, jobID int64) ([]ApplicantWithSkills, error)
	UpdateStatus(ctx context.Context, employerID, applicationID int64, in ApplicationStatusInput) error
	Withdraw(ctx context.Context, seekerID, applicationID int64) error
}

type Applications struct {
	apps       repository.ApplicationRepository
	jobs       repository.JobRepository
	userSkills repository.UserSkillRepository
	events     EventPublisher
	logger     *log.Logger
	now        func() time.Time
}

func NewApplicationUsecase(apps repository.ApplicationRepository, jobs repository.JobRepository, userSkills repository.UserSkillRepository, events EventPublisher, logger *log.Logger) *Applications {
	return &Applications{apps: apps, jobs: jobs, userSkills: userSkills, events: events, logger: logger, now: time.Now}
}

// Apply records an application for an active job. Duplicates are rejected
// by a pre-check and, for concurrent requests, by the unique constraint.
func (u *Applications) Apply(ctx context.Context, seekerID int64, in ApplyInput) (int64, error) {
	if in.JobID <= 0 {
		return 0, invalid("Job ID is required")
	}

	j, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrJobNotFound
		}
		return 0, ErrInternal
	}
	if !j.Status.AcceptsApplications() {
		return 0, ErrJobNotAccepting
	}

	exists, err := u.apps.ExistsForSeeker(ctx, in.JobID, seekerID)
	if err != nil {
		return 0, ErrInternal
	}
	if exists {
		return 0, ErrAlreadyApplied
	}

	id, err := u.apps.Create(ctx, application.Application{
		JobID:       in.JobID,
		JobSeekerID: seekerID,
		CoverLetter: trimmedOrNil(in.CoverLetter),
		Status:      application.StatusPending,
	})
	if err != nil {
		switch {
		case repository.IsUniqueViolation(err):
			return 0, ErrAlreadyApplied
		case repository.IsForeignKeyViolation(err):
			return 0, ErrJobNotFound
		default:
			u.logf("[Applications] create failed job_id=%d seeker_id=%d err=%v", in.JobID, seekerID, err)
			return 0, ErrInternal
		}
	}

	// The counter is a separate statement. If it fails the application stands
	// and applications_count stays one short.
	if err := u.jobs.IncrementApplications(ctx, in.JobID); err != nil {
		u.logf("[Applications] applications_count drift job_id=%d application_id=%d err=%v", in.JobID, id, err)
	}

	u.publish(ctx, messaging.EventApplicationSubmitted, map[string]any{
		"application_id": id,
		"job_id":         in.JobID,
		"job_seeker_id":  seekerID,
		"employer_id":    j.EmployerID,
	})
	return id, nil
}

func (u *Applications) MyApplications(ctx context.Context, seekerID int64) ([]repository.SeekerApplication, error) {
	out, err := u.apps.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Applications) ListForJob(ctx context.Context, employerID, jobID int64) ([]ApplicantWithSkills, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrJobAccessDenied
		}
		return nil, ErrInternal
	}
	if j.EmployerID != employerID {
		return nil, ErrJobAccessDenied
	}

	applicants, err := u.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(applicants) == 0 {
		return []ApplicantWithSkills{}, nil
	}

	seekerIDs := slice.Map(applicants, func(_ int, a repository.Applicant) int64 { return a.JobSeekerID })
	skillsBySeeker, err := u.userSkills.FindByUserIDs(ctx, seekerIDs)
	if err != nil {
		return nil, ErrInternal
	}

	return slice.Map(applicants, func(_ int, a repository.Applicant) ApplicantWithSkills {
		s := skillsBySeeker[a.JobSeekerID]
		if s == nil {
			s = []skill.UserSkill{}
		}
		return ApplicantWithSkills{Applicant: a, Skills: s}
	}), nil
}

func (u *Applications) UpdateStatus(ctx context.Context, employerID, applicationID int64, in ApplicationStatusInput) error {
	status, err := application.ParseStatus(in.Status)
	if err != nil {
		return invalid("Invalid status")
	}

	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}
	// not revealing that the application exists
	if a.JobEmployerID != employerID {
		return ErrApplicationNotFound
	}

	reviewedAt := u.now().UTC()
	if err := u.apps.UpdateStatus(ctx, applicationID, status, trimmedOrNil(in.Notes), &reviewedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}

	u.publish(ctx, messaging.EventApplicationStatusChanged, map[string]any{
		"application_id": applicationID,
		"job_id":         a.JobID,
		"job_seeker_id":  a.JobSeekerID,
		"from":           a.Status,
		"to":             status,
	})
	return nil
}

func (u *Applications) Withdraw(ctx context.Context, seekerID, applicationID int64) error {
	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}
	if a.JobSeekerID != seekerID {
		return ErrApplicationNotFound
	}
	if !a.Status.Withdrawable() {
		return ErrNotWithdrawable
	}

	if err := u.apps.UpdateStatus(ctx, applicationID, application.StatusWithdrawn, nil, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrApplicationNotFound
		}
		return ErrInternal
	}

	u.publish(ctx, messaging.EventApplicationStatusChanged, map[string]any{
		"application_id": applicationID,
		"job_id":         a.JobID,
		"job_seeker_id":  seekerID,
		"from":           a.Status,
		"to":             application.StatusWithdrawn,
	})
	return nil
}

func (u *Applications) publish(ctx context.Context, key string, payload any) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, key, payload); err != nil {
		u.logf("[Applications] publish %s failed: %v", key, err)
	}
}

func (u *Applications) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
