package usecase

import (
	"context"
	"testing"
	"time"

	"skill-hire/internal/domain/job"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/infrastructure/messaging"
	"skill-hire/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	uc       *Admin
	users    *fakeUsers
	jobs     *fakeJobs
	logs     *fakeAdminLogs
	cache    *memCache
	notifier *recordingNotifier
	events   *recordingPublisher
}

var adminUser = user.User{ID: 1, Role: user.RoleAdmin, IsActive: true}

func newAdminFixture(analytics repository.AnalyticsRepository) adminFixture {
	f := adminFixture{
		users: newFakeUsers(adminUser, user.User{ID: 2, Role: user.RoleJobSeeker, IsActive: true, PasswordHash: "h"}),
		jobs: newFakeJobs(
			job.Job{ID: 10, Title: "Pending role", Status: job.StatusPending},
			job.Job{ID: 11, Title: "Live role", Status: job.StatusActive},
		),
		logs:     &fakeAdminLogs{},
		cache:    newMemCache(),
		notifier: &recordingNotifier{},
		events:   &recordingPublisher{},
	}
	f.uc = NewAdminUsecase(f.users, f.jobs, f.logs, analytics, f.cache, f.notifier, f.events, nil)
	return f
}

func boolPtr(b bool) *bool { return &b }

func TestAdminSetUserStatus(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.SetUserStatus(ctx, adminUser, 1, boolPtr(false)), ErrCannotDeactivateSelf)
	assert.ErrorIs(t, f.uc.SetUserStatus(ctx, adminUser, 2, nil), ErrInvalidInput)
	assert.ErrorIs(t, f.uc.SetUserStatus(ctx, adminUser, 404, boolPtr(false)), ErrUserNotFound)
	assert.Empty(t, f.logs.entries)

	require.NoError(t, f.uc.SetUserStatus(ctx, adminUser, 2, boolPtr(false)))
	assert.False(t, f.users.byID[2].IsActive)
	require.Len(t, f.logs.entries, 1)
	entry := f.logs.entries[0]
	assert.Equal(t, repository.AdminActionUserStatus, entry.ActionType)
	assert.Equal(t, repository.AdminTargetUser, entry.TargetType)
	assert.EqualValues(t, 2, entry.TargetID)
	assert.Equal(t, "User deactivated", *entry.Description)

	// re-activating oneself is allowed
	assert.NoError(t, f.uc.SetUserStatus(ctx, adminUser, 1, boolPtr(true)))
}

func TestAdminSetJobStatus_Approve(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})

	require.NoError(t, f.uc.SetJobStatus(context.Background(), adminUser, 10, "active"))
	assert.Equal(t, job.StatusActive, f.jobs.byID[10].Status)
	assert.Equal(t, 1, f.cache.invalidated)
	assert.Equal(t, []string{"active"}, f.notifier.calls)
	assert.Equal(t, []string{messaging.EventJobStatusChanged}, f.events.keys)
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, "Job status changed from pending to active", *f.logs.entries[0].Description)
}

func TestAdminSetJobStatus_RejectPendingIsQuiet(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})

	require.NoError(t, f.uc.SetJobStatus(context.Background(), adminUser, 10, "rejected"))
	assert.Empty(t, f.notifier.calls)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestAdminSetJobStatus_Errors(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.SetJobStatus(ctx, adminUser, 10, "archived"), ErrInvalidInput)
	assert.ErrorIs(t, f.uc.SetJobStatus(ctx, adminUser, 404, "active"), ErrJobNotFound)
	assert.Empty(t, f.logs.entries)
	assert.Empty(t, f.notifier.calls)
}

func TestAdminDeleteJob(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})
	ctx := context.Background()

	require.NoError(t, f.uc.DeleteJob(ctx, adminUser, 11))
	assert.Equal(t, []int64{11}, f.jobs.deleted)
	assert.Equal(t, []string{"deleted"}, f.notifier.calls)
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, repository.AdminActionJobDelete, f.logs.entries[0].ActionType)

	require.NoError(t, f.uc.DeleteJob(ctx, adminUser, 10))
	assert.Len(t, f.notifier.calls, 1)

	assert.ErrorIs(t, f.uc.DeleteJob(ctx, adminUser, 11), ErrJobNotFound)
}

func TestAdminAnalytics(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})
	fixed := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	f.uc.now = func() time.Time { return fixed }

	out, err := f.uc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, out.GeneratedAt)
	assert.Len(t, out.UsersByRole, 1)
	assert.Len(t, out.RecentJobsDaily, 1)

	failing := newAdminFixture(fakeAnalytics{err: errBoom})
	_, err = failing.uc.Analytics(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAdminUsers(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})

	page, err := f.uc.Users(context.Background(), AdminUserFilter{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	assert.EqualValues(t, 2, page.Total)
	for _, u := range page.Items {
		assert.Empty(t, u.PasswordHash)
	}

	_, err = f.uc.Users(context.Background(), AdminUserFilter{Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdminJobs_InvalidStatus(t *testing.T) {
	f := newAdminFixture(fakeAnalytics{})
	_, err := f.uc.Jobs(context.Background(), AdminJobFilter{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
