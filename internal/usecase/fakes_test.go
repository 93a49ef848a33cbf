package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"skill-hire/internal/domain"
	"skill-hire/internal/domain/application"
	"skill-hire/internal/domain/company"
	"skill-hire/internal/domain/job"
	"skill-hire/internal/domain/skill"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/pkg/jwt"
	"skill-hire/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

var errBoom = errors.New("boom")

var uniqueViolation = &pgconn.PgError{Code: "23505"}

type fakeUsers struct {
	byID     map[int64]user.User
	profiles map[int64]user.SeekerProfile
	nextID   int64
	err      error
	updates  []user.ProfileUpdate
}

func newFakeUsers(users ...user.User) *fakeUsers {
	f := &fakeUsers{byID: map[int64]user.User{}, profiles: map[int64]user.SeekerProfile{}, nextID: 100}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u user.User) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
	if u.Role == user.RoleJobSeeker {
		f.profiles[u.ID] = user.SeekerProfile{UserID: u.ID}
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (user.User, error) {
	if f.err != nil {
		return user.User{}, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsers) GetSeekerProfile(_ context.Context, userID int64) (user.SeekerProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return user.SeekerProfile{}, user.ErrNotFound
	}
	return p, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, userID int64, in user.ProfileUpdate) error {
	if _, ok := f.byID[userID]; !ok {
		return user.ErrNotFound
	}
	f.updates = append(f.updates, in)
	u := f.byID[userID]
	if in.ProfilePhoto != nil {
		u.ProfilePhoto = in.ProfilePhoto
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	f.byID[userID] = u
	if p, ok := f.profiles[userID]; ok {
		if in.ResumeText != nil {
			p.ResumeText = in.ResumeText
		}
		if in.ResumePath != nil {
			p.ResumePath = in.ResumePath
		}
		f.profiles[userID] = p
	}
	return nil
}

func (f *fakeUsers) SetActive(_ context.Context, id int64, active bool) error {
	u, ok := f.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.IsActive = active
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) SetPasswordHash(_ context.Context, id int64, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) List(context.Context, user.ListFilter) ([]user.User, error) {
	out := make([]user.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUsers) Count(context.Context, user.ListFilter) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateAccessToken(userID int64, email, role string) (string, error) {
	return "token-" + role, nil
}

func (fakeJWT) ValidateToken(string) (jwt.Claims, error) { return jwt.Claims{}, jwt.ErrTokenInvalid }

type fakeCompanies struct {
	byUser map[int64]company.Company
	nextID int64
}

func newFakeCompanies() *fakeCompanies {
	return &fakeCompanies{byUser: map[int64]company.Company{}, nextID: 500}
}

func (f *fakeCompanies) GetByUserID(_ context.Context, userID int64) (company.Company, error) {
	c, ok := f.byUser[userID]
	if !ok {
		return company.Company{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCompanies) GetByID(_ context.Context, id int64) (company.Company, error) {
	for _, c := range f.byUser {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, repository.ErrNotFound
}

func (f *fakeCompanies) Create(_ context.Context, c company.Company) (company.Company, error) {
	f.nextID++
	c.ID = f.nextID
	f.byUser[c.UserID] = c
	return c, nil
}

func (f *fakeCompanies) Update(_ context.Context, c company.Company) (company.Company, error) {
	old := f.byUser[c.UserID]
	if c.Logo == nil {
		c.Logo = old.Logo
	}
	f.byUser[c.UserID] = c
	return c, nil
}

type fakeJobs struct {
	mu            sync.Mutex
	byID          map[int64]job.Job
	recent        []job.Job
	created       []repository.NewJob
	listErr       error
	getErr        error
	incAppsErr    error
	incApps       int
	incViews      int
	statusUpdates map[int64]job.Status
	deleted       []int64
	listCalls     int
	lastFilter    repository.JobListFilter
	recentLimit   int
	onList        func()
}

func newFakeJobs(jobs ...job.Job) *fakeJobs {
	f := &fakeJobs{byID: map[int64]job.Job{}, statusUpdates: map[int64]job.Status{}}
	for _, j := range jobs {
		f.byID[j.ID] = j
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, in repository.NewJob) (int64, error) {
	f.created = append(f.created, in)
	return int64(900 + len(f.created)), nil
}

func (f *fakeJobs) GetByID(_ context.Context, id int64) (job.Job, error) {
	if f.getErr != nil {
		return job.Job{}, f.getErr
	}
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobs) ListActive(_ context.Context, flt repository.JobListFilter) ([]job.Job, error) {
	if f.onList != nil {
		f.onList()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastFilter = flt
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.recent, nil
}

func (f *fakeJobs) CountActive(context.Context, repository.JobListFilter) (int64, error) {
	return int64(len(f.recent)), nil
}

func (f *fakeJobs) ListRecentActive(_ context.Context, limit int) ([]job.Job, error) {
	f.recentLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeJobs) ListByEmployer(_ context.Context, employerID int64) ([]job.Job, error) {
	var out []job.Job
	for _, j := range f.byID {
		if j.EmployerID == employerID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobs) ListAdmin(context.Context, repository.JobAdminFilter) ([]job.Job, error) {
	return f.recent, nil
}

func (f *fakeJobs) CountAdmin(context.Context, repository.JobAdminFilter) (int64, error) {
	return int64(len(f.recent)), nil
}

func (f *fakeJobs) UpdateStatus(_ context.Context, id int64, status job.Status) error {
	j, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	j.Status = status
	f.byID[id] = j
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeJobs) IncrementViews(context.Context, int64) error {
	f.incViews++
	return nil
}

func (f *fakeJobs) IncrementApplications(context.Context, int64) error {
	if f.incAppsErr != nil {
		return f.incAppsErr
	}
	f.incApps++
	return nil
}

type fakeJobSkills struct {
	ids       map[int64][]int64
	names     map[int64]string
	err       error
	hydrateOf []int64
}

func (f *fakeJobSkills) SkillIDsByJobIDs(_ context.Context, jobIDs []int64) (map[int64][]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[int64][]int64{}
	for _, id := range jobIDs {
		if s, ok := f.ids[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (f *fakeJobSkills) FindByJobIDs(_ context.Context, jobIDs []int64) (map[int64][]job.SkillRequirement, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.hydrateOf = append([]int64(nil), jobIDs...)
	out := map[int64][]job.SkillRequirement{}
	for _, id := range jobIDs {
		for _, sid := range f.ids[id] {
			out[id] = append(out[id], job.SkillRequirement{JobID: id, SkillID: sid, SkillName: f.names[sid], IsRequired: true})
		}
	}
	return out, nil
}

type fakeSkills struct {
	catalogue []skill.Skill
}

func (f *fakeSkills) List(context.Context, string) ([]skill.Skill, error) { return f.catalogue, nil }

func (f *fakeSkills) Categories(context.Context) ([]string, error) { return []string{"backend"}, nil }

func (f *fakeSkills) ExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	var out []int64
	for _, id := range ids {
		for _, s := range f.catalogue {
			if s.ID == id {
				out = append(out, id)
			}
		}
	}
	return out, nil
}

func (f *fakeSkills) ExistsByID(_ context.Context, id int64) (bool, error) {
	for _, s := range f.catalogue {
		if s.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserSkills struct {
	byUser map[int64][]skill.UserSkill
	err    error
}

func (f *fakeUserSkills) FindByUserID(_ context.Context, userID int64) ([]skill.UserSkill, error) {
	return f.byUser[userID], f.err
}

func (f *fakeUserSkills) FindByUserIDs(_ context.Context, ids []int64) (map[int64][]skill.UserSkill, error) {
	out := map[int64][]skill.UserSkill{}
	for _, id := range ids {
		if s, ok := f.byUser[id]; ok {
			out[id] = s
		}
	}
	return out, f.err
}

func (f *fakeUserSkills) SkillIDsByUserID(_ context.Context, userID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []int64
	for _, s := range f.byUser[userID] {
		out = append(out, s.SkillID)
	}
	return out, nil
}

func (f *fakeUserSkills) Upsert(_ context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	if f.byUser == nil {
		f.byUser = map[int64][]skill.UserSkill{}
	}
	list := f.byUser[us.UserID]
	for i := range list {
		if list[i].SkillID == us.SkillID {
			list[i].ProficiencyLevel = us.ProficiencyLevel
			list[i].YearsOfExperience = us.YearsOfExperience
			return list[i], nil
		}
	}
	us.ID = int64(len(list) + 1)
	f.byUser[us.UserID] = append(list, us)
	return us, nil
}

func (f *fakeUserSkills) Delete(_ context.Context, userID, skillID int64) error {
	list := f.byUser[userID]
	for i := range list {
		if list[i].SkillID == skillID {
			f.byUser[userID] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func userSkills(userID int64, ids ...int64) []skill.UserSkill {
	out := make([]skill.UserSkill, 0, len(ids))
	for _, id := range ids {
		out = append(out, skill.UserSkill{UserID: userID, SkillID: id})
	}
	return out
}

type fakeApps struct {
	rows       map[int64]repository.OwnedApplication
	exists     bool
	createErr  error
	nextID     int64
	applicants []repository.Applicant
}

func newFakeApps() *fakeApps {
	return &fakeApps{rows: map[int64]repository.OwnedApplication{}, nextID: 10}
}

func (f *fakeApps) Create(_ context.Context, a application.Application) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	f.rows[a.ID] = repository.OwnedApplication{Application: a}
	return a.ID, nil
}

func (f *fakeApps) ExistsForSeeker(_ context.Context, jobID, seekerID int64) (bool, error) {
	if f.exists {
		return true, nil
	}
	for _, r := range f.rows {
		if r.JobID == jobID && r.JobSeekerID == seekerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApps) GetByID(_ context.Context, id int64) (repository.OwnedApplication, error) {
	r, ok := f.rows[id]
	if !ok {
		return repository.OwnedApplication{}, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeApps) ListBySeeker(context.Context, int64) ([]repository.SeekerApplication, error) {
	return nil, nil
}

func (f *fakeApps) ListByJob(context.Context, int64) ([]repository.Applicant, error) {
	return f.applicants, nil
}

func (f *fakeApps) UpdateStatus(_ context.Context, id int64, status application.Status, notes *string, reviewedAt *time.Time) error {
	r, ok := f.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.Status = status
	if notes != nil {
		r.Notes = notes
	}
	if reviewedAt != nil {
		r.ReviewedAt = reviewedAt
	}
	f.rows[id] = r
	return nil
}

type fakeAdminLogs struct {
	entries []repository.AdminLog
}

func (f *fakeAdminLogs) Create(_ context.Context, l repository.AdminLog) error {
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeAdminLogs) List(context.Context, int, int) ([]repository.AdminLog, error) {
	return f.entries, nil
}

func (f *fakeAdminLogs) Count(context.Context) (int64, error) { return int64(len(f.entries)), nil }

type fakeAnalytics struct {
	err error
}

func (f fakeAnalytics) ActiveUsersByRole(context.Context) ([]domain.CountByKey, error) {
	return []domain.CountByKey{{Key: "job_seeker", Count: 3}}, nil
}

func (f fakeAnalytics) JobsByStatus(context.Context) ([]domain.CountByKey, error) {
	return []domain.CountByKey{{Key: "active", Count: 2}}, f.err
}

func (f fakeAnalytics) ApplicationsByStatus(context.Context) ([]domain.CountByKey, error) {
	return nil, nil
}

func (f fakeAnalytics) DailyNewJobs(context.Context, int) ([]domain.DailyCount, error) {
	return []domain.DailyCount{{Date: "2024-05-01", Count: 1}}, nil
}

func (f fakeAnalytics) DailyNewUsers(context.Context, int) ([]domain.DailyCount, error) {
	return nil, nil
}

// memCache is an in-memory Cache.
type memCache struct {
	mu          sync.Mutex
	data        map[string][]byte
	invalidated int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, v any, _ time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = []byte(value)
	return true, nil
}

func (c *memCache) JobsGeneration(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(c.invalidated), nil
}

func (c *memCache) InvalidateJobs(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.data = map[string][]byte{}
	return nil
}

type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) NotifyJobsUpdated(jobID int64, status string) {
	n.calls = append(n.calls, status)
}

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.keys = append(p.keys, key)
	return p.err
}

type memFiles struct {
	saved   map[string][]byte
	deleted []string
}

func newMemFiles() *memFiles { return &memFiles{saved: map[string][]byte{}} }

func (m *memFiles) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	m.saved[key] = data
	return "/uploads/" + key, nil
}

func (m *memFiles) Delete(_ context.Context, ref string) error {
	m.deleted = append(m.deleted, ref)
	return nil
}
