package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"skill-hire/internal/domain"
	"skill-hire/internal/domain/job"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/repository"

	"golang.org/x/sync/errgroup"
)

// AnalyticsWindowDays is the length of the daily series on the dashboard.
const AnalyticsWindowDays = 30

type AdminUserFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

type AdminJobFilter struct {
	Status string
	Page   int
	Limit  int
}

type Page[T any] struct {
	Items []T
	Page  int
	Limit int
	Total int64
}

type AdminUsecase interface {
	Analytics(ctx context.Context) (domain.Analytics, error)
	Users(ctx context.Context, f AdminUserFilter) (Page[user.User], error)
	SetUserStatus(ctx context.Context, admin user.User, userID int64, active *bool) error
	Jobs(ctx context.Context, f AdminJobFilter) (Page[job.Job], error)
	SetJobStatus(ctx context.Context, admin user.User, jobID int64, status string) error
	DeleteJob(ctx context.Context, admin user.User, jobID int64) error
	Logs(ctx context.Context, page, limit int) (Page[repository.AdminLog], error)
}

type Admin struct {
	users     user.Repository
	jobs      repository.JobRepository
	logs      repository.AdminLogRepository
	analytics repository.AnalyticsRepository
	cache     Cache
	notifier  JobsNotifier
	events    EventPublisher
	logger    *log.Logger
	now       func() time.Time
}

func NewAdminUsecase(
	users user.Repository,
	jobs repository.JobRepository,
	logs repository.AdminLogRepository,
	analytics repository.AnalyticsRepository,
	cache Cache,
	notifier JobsNotifier,
	events EventPublisher,
	logger *log.Logger,
) *Admin {
	return &Admin{
		users:     users,
		jobs:      jobs,
		logs:      logs,
		analytics: analytics,
		cache:     cache,
		notifier:  notifier,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Admin) Analytics(ctx context.Context) (domain.Analytics, error) {
	var out domain.Analytics
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		out.UsersByRole, err = u.analytics.ActiveUsersByRole(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		out.JobsByStatus, err = u.analytics.JobsByStatus(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		out.ApplicationsByStatus, err = u.analytics.ApplicationsByStatus(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		out.RecentJobsDaily, err = u.analytics.DailyNewJobs(egCtx, AnalyticsWindowDays)
		return err
	})
	eg.Go(func() (err error) {
		out.RecentUsersDaily, err = u.analytics.DailyNewUsers(egCtx, AnalyticsWindowDays)
		return err
	})
	if err := eg.Wait(); err != nil {
		u.logf("[Admin] analytics failed: %v", err)
		return domain.Analytics{}, ErrInternal
	}
	out.GeneratedAt = u.now().UTC()
	return out, nil
}

func (u *Admin) Users(ctx context.Context, f AdminUserFilter) (Page[user.User], error) {
	page, limit := NormalizePage(f.Page, f.Limit)
	lf := user.ListFilter{Search: strings.TrimSpace(f.Search), Limit: limit, Offset: (page - 1) * limit}
	if r := strings.TrimSpace(f.Role); r != "" {
		role, err := user.ParseRole(r)
		if err != nil {
			return Page[user.User]{}, invalid("Invalid role")
		}
		lf.Role = &role
	}

	var (
		items []user.User
		total int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		items, err = u.users.List(egCtx, lf)
		return err
	})
	eg.Go(func() (err error) {
		total, err = u.users.Count(egCtx, lf)
		return err
	})
	if err := eg.Wait(); err != nil {
		return Page[user.User]{}, ErrInternal
	}
	for i := range items {
		items[i] = sanitizeUser(items[i])
	}
	return Page[user.User]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (u *Admin) SetUserStatus(ctx context.Context, admin user.User, userID int64, active *bool) error {
	if active == nil {
		return invalid("is_active is required")
	}
	if admin.ID == userID && !*active {
		return ErrCannotDeactivateSelf
	}

	if err := u.users.SetActive(ctx, userID, *active); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	state := "deactivated"
	if *active {
		state = "activated"
	}
	u.audit(ctx, admin, repository.AdminActionUserStatus, repository.AdminTargetUser, userID, fmt.Sprintf("User %s", state))
	return nil
}

func (u *Admin) Jobs(ctx context.Context, f AdminJobFilter) (Page[job.Job], error) {
	page, limit := NormalizePage(f.Page, f.Limit)
	jf := repository.JobAdminFilter{Limit: limit, Offset: (page - 1) * limit}
	if s := strings.TrimSpace(f.Status); s != "" {
		status, err := job.ParseStatus(s)
		if err != nil {
			return Page[job.Job]{}, invalid("Invalid status")
		}
		jf.Status = &status
	}

	var (
		items []job.Job
		total int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		items, err = u.jobs.ListAdmin(egCtx, jf)
		return err
	})
	eg.Go(func() (err error) {
		total, err = u.jobs.CountAdmin(egCtx, jf)
		return err
	})
	if err := eg.Wait(); err != nil {
		return Page[job.Job]{}, ErrInternal
	}
	return Page[job.Job]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

func (u *Admin) SetJobStatus(ctx context.Context, admin user.User, jobID int64, status string) error {
	to, err := job.ParseStatus(strings.TrimSpace(status))
	if err != nil {
		return invalid("Invalid status")
	}

	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	if err := u.jobs.UpdateStatus(ctx, jobID, to); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	u.audit(ctx, admin, repository.AdminActionJobStatus, repository.AdminTargetJob, jobID,
		fmt.Sprintf("Job status changed from %s to %s", j.Status, to))

	jobStatusChanged(ctx, jobStatusChange{
		jobID: jobID, from: j.Status, to: to,
		cache: u.cache, notifier: u.notifier, events: u.events, logger: u.logger,
	})
	return nil
}

func (u *Admin) DeleteJob(ctx context.Context, admin user.User, jobID int64) error {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	u.audit(ctx, admin, repository.AdminActionJobDelete, repository.AdminTargetJob, jobID,
		fmt.Sprintf("Deleted job %q", j.Title))

	if u.cache != nil {
		if err := u.cache.InvalidateJobs(ctx); err != nil {
			u.logf("[Admin] cache invalidation failed job_id=%d err=%v", jobID, err)
		}
	}
	if j.Status == job.StatusActive && u.notifier != nil {
		u.notifier.NotifyJobsUpdated(jobID, "deleted")
	}
	return nil
}

func (u *Admin) Logs(ctx context.Context, page, limit int) (Page[repository.AdminLog], error) {
	page, limit = NormalizePage(page, limit)

	var (
		items []repository.AdminLog
		total int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		items, err = u.logs.List(egCtx, limit, (page-1)*limit)
		return err
	})
	eg.Go(func() (err error) {
		total, err = u.logs.Count(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return Page[repository.AdminLog]{}, ErrInternal
	}
	return Page[repository.AdminLog]{Items: items, Page: page, Limit: limit, Total: total}, nil
}

// audit records the action; a failed write does not undo the action.
func (u *Admin) audit(ctx context.Context, admin user.User, action, target string, targetID int64, desc string) {
	err := u.logs.Create(ctx, repository.AdminLog{
		AdminID:     admin.ID,
		ActionType:  action,
		TargetType:  target,
		TargetID:    targetID,
		Description: &desc,
	})
	if err != nil {
		u.logf("[Admin] audit log write failed admin_id=%d action=%s target_id=%d err=%v", admin.ID, action, targetID, err)
	}
}

func (u *Admin) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}
