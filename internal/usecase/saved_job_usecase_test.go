package usecase

import (
	"context"
	"testing"

	"skill-hire/internal/domain/job"
	"skill-hire/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaved struct {
	rows map[[2]int64]bool
}

func (f *fakeSaved) Save(_ context.Context, seekerID, jobID int64) error {
	f.rows[[2]int64{seekerID, jobID}] = true
	return nil
}

func (f *fakeSaved) ListActive(_ context.Context, seekerID int64) ([]repository.SavedJob, error) {
	out := []repository.SavedJob{}
	for k := range f.rows {
		if k[0] == seekerID {
			out = append(out, repository.SavedJob{Job: job.Job{ID: k[1]}})
		}
	}
	return out, nil
}

func (f *fakeSaved) Delete(_ context.Context, seekerID, jobID int64) error {
	k := [2]int64{seekerID, jobID}
	if !f.rows[k] {
		return repository.ErrNotFound
	}
	delete(f.rows, k)
	return nil
}

func TestSavedJobs(t *testing.T) {
	saved := &fakeSaved{rows: map[[2]int64]bool{}}
	uc := NewSavedJobUsecase(saved, newFakeJobs(job.Job{ID: 10, Status: job.StatusActive}))
	ctx := context.Background()

	require.NoError(t, uc.Save(ctx, 5, 10))
	require.NoError(t, uc.Save(ctx, 5, 10))
	assert.ErrorIs(t, uc.Save(ctx, 5, 11), ErrJobNotFound)
	assert.ErrorIs(t, uc.Save(ctx, 5, 0), ErrInvalidInput)

	list, err := uc.List(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Remove(ctx, 5, 10))
	assert.ErrorIs(t, uc.Remove(ctx, 5, 10), ErrSavedJobNotFound)
}
