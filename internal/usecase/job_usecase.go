package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"skill-hire/internal/domain/company"
	"skill-hire/internal/domain/job"
	"skill-hire/internal/infrastructure/cache"
	"skill-hire/internal/infrastructure/messaging"
	"skill-hire/internal/repository"
	"skill-hire/internal/search"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	jobListLockTTL = 30 * time.Second
)

type JobListParams struct {
	Category  string
	JobType   string
	Location  string
	Search    string
	MinSalary *float64
	Page      int
	Limit     int
}

type JobWithSkills struct {
	job.Job
	Skills []job.SkillRequirement
}

type JobListResult struct {
	Jobs  []JobWithSkills
	Page  int
	Limit int
	Total int64
}

type JobDetail struct {
	JobWithSkills
	Company *company.Company
}

type CreateJobInput struct {
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
	ExpiresAt          *time.Time
	SkillIDs           []int64
}

type JobUsecase interface {
	List(ctx context.Context, params JobListParams) (JobListResult, error)
	Get(ctx context.Context, id int64) (JobDetail, error)
	Create(ctx context.Context, employerID int64, in CreateJobInput) (int64, error)
	ListMine(ctx context.Context, employerID int64) ([]JobWithSkills, error)
	Close(ctx context.Context, employerID, jobID int64) error
}

type Jobs struct {
	jobs      repository.JobRepository
	jobSkills repository.JobSkillRepository
	skills    repository.SkillRepository
	companies repository.CompanyRepository
	cache     Cache
	notifier  JobsNotifier
	events    EventPublisher
	logger    *log.Logger
}

func NewJobUsecase(
	jobs repository.JobRepository,
	jobSkills repository.JobSkillRepository,
	skills repository.SkillRepository,
	companies repository.CompanyRepository,
	cache Cache,
	notifier JobsNotifier,
	events EventPublisher,
	logger *log.Logger,
) *Jobs {
	return &Jobs{
		jobs:      jobs,
		jobSkills: jobSkills,
		skills:    skills,
		companies: companies,
		cache:     cache,
		notifier:  notifier,
		events:    events,
		logger:    logger,
	}
}

// NormalizePage clamps page to >= 1 and limit to 1..MaxPageLimit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func (u *Jobs) List(ctx context.Context, params JobListParams) (JobListResult, error) {
	params.Page, params.Limit = NormalizePage(params.Page, params.Limit)
	if params.MinSalary != nil {
		if v := *params.MinSalary; math.IsNaN(v) || math.IsInf(v, 0) {
			return JobListResult{}, invalid("Invalid min_salary")
		}
		if *params.MinSalary < 0 {
			return JobListResult{}, invalid("min_salary must not be negative")
		}
	}

	key, useCache := u.listCacheKey(ctx, params)
	lockKey := cache.JobListLockPrefix + strings.TrimPrefix(key, cache.JobListPrefix)

	if useCache {
		if out, ok := u.cachedList(ctx, key); ok {
			return out, nil
		}
	}

	lockAcquired := false
	if useCache {
		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", jobListLockTTL)
		switch {
		case err == nil && ok:
			lockAcquired = true
		case err == nil && !ok:
			// another request is rebuilding this page
			jitter := time.Duration(time.Now().UnixNano()%201) * time.Millisecond
			time.Sleep(300*time.Millisecond + jitter)
			if out, ok := u.cachedList(ctx, key); ok {
				return out, nil
			}
			u.logf("[Jobs] Lock wait fallback: %s", lockKey)
		}
	}
	if lockAcquired {
		defer func() { _ = u.cache.Delete(context.WithoutCancel(ctx), lockKey) }()
	}

	f := repository.JobListFilter{
		Category:       strings.TrimSpace(params.Category),
		JobType:        strings.TrimSpace(params.JobType),
		Location:       strings.TrimSpace(params.Location),
		SearchVariants: search.ProcessQuery(params.Search).Variants,
		MinSalary:      params.MinSalary,
		Limit:          params.Limit,
		Offset:         (params.Page - 1) * params.Limit,
	}

	var (
		rows  []job.Job
		total int64
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		rows, err = u.jobs.ListActive(egCtx, f)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = u.jobs.CountActive(egCtx, f)
		return err
	})
	if err := eg.Wait(); err != nil {
		u.logf("[Jobs] list failed: %v", err)
		return JobListResult{}, ErrInternal
	}

	withSkills, err := u.attachSkills(ctx, rows)
	if err != nil {
		return JobListResult{}, ErrInternal
	}

	out := JobListResult{Jobs: withSkills, Page: params.Page, Limit: params.Limit, Total: total}
	if useCache {
		if err := u.cache.SetJSON(ctx, key, out, 0); err == nil {
			u.logf("[Jobs] Cache SET: %s", key)
		}
	}
	return out, nil
}

func (u *Jobs) cachedList(ctx context.Context, key string) (JobListResult, bool) {
	if u.cache == nil {
		return JobListResult{}, false
	}
	var cached JobListResult
	hit, err := u.cache.GetJSON(ctx, key, &cached)
	if err != nil || !hit {
		return JobListResult{}, false
	}
	u.logf("[Jobs] Cache HIT: %s", key)
	return cached, true
}

func (u *Jobs) Get(ctx context.Context, id int64) (JobDetail, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return JobDetail{}, ErrJobNotFound
		}
		return JobDetail{}, ErrInternal
	}

	if err := u.jobs.IncrementViews(ctx, id); err != nil {
		u.logf("[Jobs] views increment failed job_id=%d err=%v", id, err)
	} else {
		j.ViewsCount++
	}

	withSkills, err := u.attachSkills(ctx, []job.Job{j})
	if err != nil {
		return JobDetail{}, ErrInternal
	}

	detail := JobDetail{JobWithSkills: withSkills[0]}
	if j.CompanyID != nil {
		c, err := u.companies.GetByID(ctx, *j.CompanyID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return JobDetail{}, ErrInternal
		}
		if err == nil {
			detail.Company = &c
		}
	}
	return detail, nil
}

func (u *Jobs) Create(ctx context.Context, employerID int64, in CreateJobInput) (int64, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.JobType = strings.TrimSpace(in.JobType)
	in.Category = strings.TrimSpace(in.Category)
	if in.Title == "" || in.Description == "" || in.JobType == "" || in.Category == "" {
		return 0, invalid("Title, description, job type and category are required")
	}
	if (in.SalaryMin != nil && *in.SalaryMin < 0) || (in.SalaryMax != nil && *in.SalaryMax < 0) {
		return 0, invalid("Salary must not be negative")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return 0, invalid("salary_min cannot be greater than salary_max")
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(time.Now()) {
		return 0, invalid("expires_at must be in the future")
	}

	skillIDs := dedupeIDs(in.SkillIDs)
	if len(skillIDs) > 0 {
		existing, err := u.skills.ExistingIDs(ctx, skillIDs)
		if err != nil {
			return 0, ErrInternal
		}
		if len(existing) != len(skillIDs) {
			return 0, invalid("One or more skills do not exist")
		}
	}

	var companyID *int64
	c, err := u.companies.GetByUserID(ctx, employerID)
	switch {
	case err == nil:
		companyID = &c.ID
	case errors.Is(err, repository.ErrNotFound):
	default:
		return 0, ErrInternal
	}

	currency := strings.ToUpper(strings.TrimSpace(in.SalaryCurrency))
	if currency == "" {
		currency = job.DefaultSalaryCurrency
	}

	id, err := u.jobs.Create(ctx, repository.NewJob{
		Job: job.Job{
			EmployerID:         employerID,
			CompanyID:          companyID,
			Title:              in.Title,
			Description:        in.Description,
			JobType:            in.JobType,
			Category:           in.Category,
			Location:           trimmedOrNil(in.Location),
			SalaryMin:          in.SalaryMin,
			SalaryMax:          in.SalaryMax,
			SalaryCurrency:     currency,
			ExperienceRequired: trimmedOrNil(in.ExperienceRequired),
			EducationRequired:  trimmedOrNil(in.EducationRequired),
			Status:             job.StatusPending,
			ExpiresAt:          in.ExpiresAt,
		},
		SkillIDs: skillIDs,
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return 0, invalid("One or more skills do not exist")
		}
		u.logf("[Jobs] create failed employer_id=%d err=%v", employerID, err)
		return 0, ErrInternal
	}

	u.logf("[Jobs] created job_id=%d employer_id=%d skills=%d", id, employerID, len(skillIDs))
	return id, nil
}

func (u *Jobs) ListMine(ctx context.Context, employerID int64) ([]JobWithSkills, error) {
	rows, err := u.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, ErrInternal
	}
	out, err := u.attachSkills(ctx, rows)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Jobs) Close(ctx context.Context, employerID, jobID int64) error {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	if j.EmployerID != employerID {
		return ErrForbidden
	}
	if j.Status == job.StatusClosed {
		return nil
	}

	if err := u.jobs.UpdateStatus(ctx, jobID, job.StatusClosed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}

	jobStatusChanged(ctx, jobStatusChange{
		jobID: jobID, from: j.Status, to: job.StatusClosed,
		cache: u.cache, notifier: u.notifier, events: u.events, logger: u.logger,
	})
	return nil
}

func (u *Jobs) attachSkills(ctx context.Context, rows []job.Job) ([]JobWithSkills, error) {
	out := make([]JobWithSkills, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, j := range rows {
		ids = append(ids, j.ID)
	}
	reqs, err := u.jobSkills.FindByJobIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, j := range rows {
		s := reqs[j.ID]
		if s == nil {
			s = []job.SkillRequirement{}
		}
		out = append(out, JobWithSkills{Job: j, Skills: s})
	}
	return out, nil
}

func (u *Jobs) logf(format string, args ...any) {
	if u.logger != nil {
		u.logger.Printf(format, args...)
	}
}

type jobStatusChange struct {
	jobID    int64
	from, to job.Status
	cache    Cache
	notifier JobsNotifier
	events   EventPublisher
	logger   *log.Logger
}

// jobStatusChanged fans a status change out to the listing cache, the
// websocket feed and the event exchange. Failures are logged only.
func jobStatusChanged(ctx context.Context, c jobStatusChange) {
	if c.cache != nil {
		if err := c.cache.InvalidateJobs(ctx); err != nil && c.logger != nil {
			c.logger.Printf("[Jobs] cache invalidation failed job_id=%d err=%v", c.jobID, err)
		}
	}
	if c.notifier != nil && (c.to == job.StatusActive || c.from == job.StatusActive) {
		c.notifier.NotifyJobsUpdated(c.jobID, string(c.to))
	}
	if c.events != nil {
		payload := map[string]any{"job_id": c.jobID, "from": c.from, "to": c.to}
		if err := c.events.Publish(ctx, messaging.EventJobStatusChanged, payload); err != nil && c.logger != nil {
			c.logger.Printf("[Jobs] publish %s failed job_id=%d err=%v", messaging.EventJobStatusChanged, c.jobID, err)
		}
	}
}

type jobListCacheKeyInput struct {
	Category  string   `json:"category"`
	JobType   string   `json:"job_type"`
	Location  string   `json:"location"`
	Search    string   `json:"search"`
	MinSalary *float64 `json:"min_salary"`
	Page      int      `json:"page"`
	Limit     int      `json:"limit"`
}

// listCacheKey reports false when the page must bypass the cache, either
// because there is none or because its generation cannot be read.
func (u *Jobs) listCacheKey(ctx context.Context, p JobListParams) (string, bool) {
	if u.cache == nil {
		return "", false
	}
	gen, err := u.cache.JobsGeneration(ctx)
	if err != nil {
		u.logf("[Jobs] cache generation unavailable: %v", err)
		return "", false
	}
	key, err := jobListCacheKey(p, gen)
	if err != nil {
		u.logf("[Jobs] cache key failed: %v", err)
		return "", false
	}
	return key, true
}

func jobListCacheKey(p JobListParams, gen int64) (string, error) {
	b, err := json.Marshal(jobListCacheKeyInput{
		Category:  strings.TrimSpace(p.Category),
		JobType:   strings.TrimSpace(p.JobType),
		Location:  normalizeCacheValue(p.Location),
		Search:    search.CollapseQuery(p.Search),
		MinSalary: p.MinSalary,
		Page:      p.Page,
		Limit:     p.Limit,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return fmt.Sprintf("%s%d:%s", cache.JobListPrefix, gen, hex.EncodeToString(sum[:])), nil
}

func normalizeCacheValue(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func dedupeIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
