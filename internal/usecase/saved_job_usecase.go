package usecase

import (
	"context"
	"errors"

	"skill-hire/internal/repository"
)

type SavedJobUsecase interface {
	Save(ctx context.Context, seekerID, jobID int64) error
	List(ctx context.Context, seekerID int64) ([]repository.SavedJob, error)
	Remove(ctx context.Context, seekerID, jobID int64) error
}

type SavedJobs struct {
	saved repository.SavedJobRepository
	jobs  repository.JobRepository
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs repository.JobRepository) *SavedJobs {
	return &SavedJobs{saved: saved, jobs: jobs}
}

func (u *SavedJobs) Save(ctx context.Context, seekerID, jobID int64) error {
	if jobID <= 0 {
		return invalid("Job ID is required")
	}
	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	if err := u.saved.Save(ctx, seekerID, jobID); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *SavedJobs) List(ctx context.Context, seekerID int64) ([]repository.SavedJob, error) {
	out, err := u.saved.ListActive(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *SavedJobs) Remove(ctx context.Context, seekerID, jobID int64) error {
	if err := u.saved.Delete(ctx, seekerID, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSavedJobNotFound
		}
		return ErrInternal
	}
	return nil
}
