package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"skill-hire/internal/domain/application"
	"skill-hire/internal/domain/job"
	"skill-hire/internal/domain/skill"
	"skill-hire/internal/infrastructure/messaging"
	"skill-hire/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationFixture() (*Applications, *fakeApps, *fakeJobs, *recordingPublisher) {
	jobs := newFakeJobs(
		job.Job{ID: 10, EmployerID: 2, Status: job.StatusActive},
		job.Job{ID: 11, EmployerID: 2, Status: job.StatusPending},
		job.Job{ID: 12, EmployerID: 2, Status: job.StatusClosed},
	)
	apps := newFakeApps()
	pub := &recordingPublisher{}
	uc := NewApplicationUsecase(apps, jobs, &fakeUserSkills{}, pub, nil)
	return uc, apps, jobs, pub
}

func TestApply_Success(t *testing.T) {
	uc, apps, jobs, pub := newApplicationFixture()

	id, err := uc.Apply(context.Background(), 5, ApplyInput{JobID: 10})
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, application.StatusPending, apps.rows[id].Status)
	assert.Equal(t, 1, jobs.incApps)
	assert.Equal(t, []string{messaging.EventApplicationSubmitted}, pub.keys)
}

func TestApply_Validation(t *testing.T) {
	uc, _, _, _ := newApplicationFixture()
	ctx := context.Background()

	_, err := uc.Apply(ctx, 5, ApplyInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Apply(ctx, 5, ApplyInput{JobID: 999})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestApply_NonActiveJobAlwaysFails(t *testing.T) {
	uc, apps, _, _ := newApplicationFixture()
	for _, id := range []int64{11, 12} {
		_, err := uc.Apply(context.Background(), 5, ApplyInput{JobID: id})
		assert.ErrorIs(t, err, ErrJobNotAccepting, "job %d", id)
	}
	assert.Empty(t, apps.rows)
}

func TestApply_DuplicatePreCheck(t *testing.T) {
	uc, apps, jobs, _ := newApplicationFixture()
	ctx := context.Background()

	_, err := uc.Apply(ctx, 5, ApplyInput{JobID: 10})
	require.NoError(t, err)
	_, err = uc.Apply(ctx, 5, ApplyInput{JobID: 10})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Len(t, apps.rows, 1)
	assert.Equal(t, 1, jobs.incApps)
}

func TestApply_UniqueViolationFromRace(t *testing.T) {
	uc, apps, jobs, _ := newApplicationFixture()
	// the pre-check passed but a concurrent insert won
	apps.createErr = fmt.Errorf("insert: %w", uniqueViolation)

	_, err := uc.Apply(context.Background(), 5, ApplyInput{JobID: 10})
	assert.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Equal(t, 0, jobs.incApps)
}

func TestApply_CounterFailureKeepsApplication(t *testing.T) {
	uc, apps, jobs, _ := newApplicationFixture()
	jobs.incAppsErr = errBoom

	id, err := uc.Apply(context.Background(), 5, ApplyInput{JobID: 10})
	require.NoError(t, err)
	assert.Contains(t, apps.rows, id)
}

func TestApply_PublishFailureIgnored(t *testing.T) {
	uc, _, _, pub := newApplicationFixture()
	pub.err = errBoom

	_, err := uc.Apply(context.Background(), 5, ApplyInput{JobID: 10})
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	uc, apps, _, pub := newApplicationFixture()
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }
	apps.rows[1] = repository.OwnedApplication{
		Application:   application.Application{ID: 1, JobID: 10, JobSeekerID: 5, Status: application.StatusPending},
		JobEmployerID: 2,
	}
	notes := "  strong profile "

	err := uc.UpdateStatus(context.Background(), 2, 1, ApplicationStatusInput{Status: "reviewing", Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, application.StatusReviewing, apps.rows[1].Status)
	assert.Equal(t, "strong profile", *apps.rows[1].Notes)
	assert.Equal(t, fixed, *apps.rows[1].ReviewedAt)
	assert.Equal(t, []string{messaging.EventApplicationStatusChanged}, pub.keys)

	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), 2, 1, ApplicationStatusInput{Status: "hired"}), ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), 3, 1, ApplicationStatusInput{Status: "accepted"}), ErrApplicationNotFound)
	assert.ErrorIs(t, uc.UpdateStatus(context.Background(), 2, 99, ApplicationStatusInput{Status: "accepted"}), ErrApplicationNotFound)
}

func TestWithdraw(t *testing.T) {
	uc, apps, _, _ := newApplicationFixture()
	apps.rows[1] = repository.OwnedApplication{Application: application.Application{ID: 1, JobSeekerID: 5, Status: application.StatusReviewing}}
	apps.rows[2] = repository.OwnedApplication{Application: application.Application{ID: 2, JobSeekerID: 5, Status: application.StatusAccepted}}
	ctx := context.Background()

	assert.ErrorIs(t, uc.Withdraw(ctx, 6, 1), ErrApplicationNotFound)
	require.NoError(t, uc.Withdraw(ctx, 5, 1))
	assert.Equal(t, application.StatusWithdrawn, apps.rows[1].Status)
	assert.ErrorIs(t, uc.Withdraw(ctx, 5, 2), ErrNotWithdrawable)
}

func TestListForJob(t *testing.T) {
	jobs := newFakeJobs(job.Job{ID: 10, EmployerID: 2, Status: job.StatusActive})
	apps := newFakeApps()
	apps.applicants = []repository.Applicant{
		{Application: application.Application{ID: 1, JobSeekerID: 5}},
		{Application: application.Application{ID: 2, JobSeekerID: 6}},
	}
	us := &fakeUserSkills{byUser: map[int64][]skill.UserSkill{5: userSkills(5, 1, 2)}}
	uc := NewApplicationUsecase(apps, jobs, us, nil, nil)

	out, err := uc.ListForJob(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Len(t, out[0].Skills, 2)
	assert.NotNil(t, out[1].Skills)
	assert.Empty(t, out[1].Skills)

	_, err = uc.ListForJob(context.Background(), 3, 10)
	assert.ErrorIs(t, err, ErrJobAccessDenied)
	_, err = uc.ListForJob(context.Background(), 2, 404)
	assert.ErrorIs(t, err, ErrJobAccessDenied)
}
