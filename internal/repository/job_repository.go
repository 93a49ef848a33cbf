package repository

import (
	"context"
	"fmt"
	"strings"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/job"
)

const jobColumns = `j.id, j.employer_id, j.company_id, j.title, j.description, j.job_type, j.category, j.location,
	j.salary_min, j.salary_max, j.salary_currency, j.experience_required, j.education_required,
	j.status, j.views_count, j.applications_count, j.posted_at, j.expires_at, j.created_at, j.updated_at,
	c.company_name, c.logo`

const jobFrom = `FROM jobs j LEFT JOIN companies c ON c.id = j.company_id`

type JobListFilter struct {
	Category       string
	JobType        string
	Location       string
	SearchVariants []string
	MinSalary      *float64
	Limit          int
	Offset         int
}

type JobAdminFilter struct {
	Status *job.Status
	Limit  int
	Offset int
}

type NewJob struct {
	Job      job.Job
	SkillIDs []int64
}

type JobRepository interface {
	Create(ctx context.Context, in NewJob) (int64, error)
	GetByID(ctx context.Context, id int64) (job.Job, error)
	ListActive(ctx context.Context, f JobListFilter) ([]job.Job, error)
	CountActive(ctx context.Context, f JobListFilter) (int64, error)
	ListRecentActive(ctx context.Context, limit int) ([]job.Job, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]job.Job, error)
	ListAdmin(ctx context.Context, f JobAdminFilter) ([]job.Job, error)
	CountAdmin(ctx context.Context, f JobAdminFilter) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status job.Status) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) error
	IncrementApplications(ctx context.Context, id int64) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// Create inserts the job and its skill requirements in one transaction.
func (r *PostgresJobRepository) Create(ctx context.Context, in NewJob) (int64, error) {
	j := in.Job
	var id int64
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO jobs (employer_id, company_id, title, description, job_type, category, location,
			                   salary_min, salary_max, salary_currency, experience_required, education_required,
			                   status, expires_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			 RETURNING id`,
			j.EmployerID, j.CompanyID, j.Title, j.Description, j.JobType, j.Category, j.Location,
			j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.ExperienceRequired, j.EducationRequired,
			string(j.Status), j.ExpiresAt,
		)
		if err := row.Scan(&id); err != nil {
			return err
		}

		if len(in.SkillIDs) == 0 {
			return nil
		}
		values := make([]string, 0, len(in.SkillIDs))
		args := make([]any, 0, len(in.SkillIDs)+1)
		args = append(args, id)
		for i, sid := range in.SkillIDs {
			args = append(args, sid)
			values = append(values, fmt.Sprintf("($1, $%d, TRUE)", i+2))
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id, is_required) VALUES `+strings.Join(values, ", ")+
				` ON CONFLICT (job_id, skill_id) DO NOTHING`,
			args...,
		)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id int64) (job.Job, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` `+jobFrom+` WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if isNoRows(err) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) ListActive(ctx context.Context, f JobListFilter) ([]job.Job, error) {
	where, args := activeListWhere(f)
	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.posted_at DESC, j.id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, jobFrom, where, len(args)-1, len(args))
	return r.queryJobs(ctx, q, args...)
}

func (r *PostgresJobRepository) CountActive(ctx context.Context, f JobListFilter) (int64, error) {
	where, args := activeListWhere(f)
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+jobFrom+` `+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListRecentActive is the recommendation candidate pool: newest active jobs
// first, ties broken by id so the order is deterministic.
func (r *PostgresJobRepository) ListRecentActive(ctx context.Context, limit int) ([]job.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` `+jobFrom+`
		 WHERE j.status = 'active'
		 ORDER BY j.posted_at DESC, j.id DESC
		 LIMIT $1`,
		limit,
	)
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]job.Job, error) {
	return r.queryJobs(ctx,
		`SELECT `+jobColumns+` `+jobFrom+` WHERE j.employer_id = $1 ORDER BY j.created_at DESC, j.id DESC`,
		employerID,
	)
}

func (r *PostgresJobRepository) ListAdmin(ctx context.Context, f JobAdminFilter) ([]job.Job, error) {
	where, args := adminListWhere(f)
	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT %s %s %s ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d`,
		jobColumns, jobFrom, where, len(args)-1, len(args))
	return r.queryJobs(ctx, q, args...)
}

func (r *PostgresJobRepository) CountAdmin(ctx context.Context, f JobAdminFilter) (int64, error) {
	where, args := adminListWhere(f)
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+jobFrom+` `+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// UpdateStatus refreshes posted_at when a job goes live so approved jobs
// surface at the top of the recency-ordered listing.
func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id int64, status job.Status) error {
	n, err := r.db.Exec(ctx,
		`UPDATE jobs
		 SET status = $1,
		     posted_at = CASE WHEN $1 = 'active' AND status <> 'active' THEN now() ELSE posted_at END,
		     updated_at = now()
		 WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, id int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET views_count = views_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) IncrementApplications(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE jobs SET applications_count = applications_count + 1 WHERE id = $1`, id)
	return err
}

func (r *PostgresJobRepository) queryJobs(ctx context.Context, q string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func activeListWhere(f JobListFilter) (string, []any) {
	conds := []string{"j.status = 'active'"}
	args := make([]any, 0, 6)

	if v := strings.TrimSpace(f.Category); v != "" {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("j.category = $%d", len(args)))
	}
	if v := strings.TrimSpace(f.JobType); v != "" {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("j.job_type = $%d", len(args)))
	}
	if v := strings.TrimSpace(f.Location); v != "" {
		args = append(args, "%"+v+"%")
		conds = append(conds, fmt.Sprintf("j.location ILIKE $%d", len(args)))
	}
	if len(f.SearchVariants) > 0 {
		ors := make([]string, 0, len(f.SearchVariants))
		for _, v := range f.SearchVariants {
			args = append(args, "%"+v+"%")
			n := len(args)
			ors = append(ors, fmt.Sprintf("j.title ILIKE $%d OR j.description ILIKE $%d", n, n))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	if f.MinSalary != nil {
		args = append(args, *f.MinSalary)
		conds = append(conds, fmt.Sprintf("j.salary_min >= $%d", len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func adminListWhere(f JobAdminFilter) (string, []any) {
	if f.Status == nil {
		return "", nil
	}
	return "WHERE j.status = $1", []any{string(*f.Status)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (job.Job, error) {
	var j job.Job
	var status string
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.CompanyID, &j.Title, &j.Description, &j.JobType, &j.Category, &j.Location,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency, &j.ExperienceRequired, &j.EducationRequired,
		&status, &j.ViewsCount, &j.ApplicationsCount, &j.PostedAt, &j.ExpiresAt, &j.CreatedAt, &j.UpdatedAt,
		&j.CompanyName, &j.CompanyLogo,
	)
	if err != nil {
		return job.Job{}, err
	}
	j.Status, err = job.ParseStatus(status)
	if err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func placeholders(start, n int) string {
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("$%d", start+i))
	}
	return strings.Join(parts, ", ")
}
