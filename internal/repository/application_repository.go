package repository

import (
	"context"
	"time"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/application"
)

// OwnedApplication carries the employer who owns the job so callers can
// check ownership without a second query.
type OwnedApplication struct {
	application.Application
	JobEmployerID int64
}

type SeekerApplication struct {
	application.Application
	JobTitle    string
	JobType     string
	JobLocation *string
	JobStatus   string
	CompanyName *string
	CompanyLogo *string
}

type Applicant struct {
	application.Application
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	ProfilePhoto    *string
	Bio             *string
	CurrentPosition *string
	ExperienceYears *int
	ResumePath      *string
}

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (int64, error)
	ExistsForSeeker(ctx context.Context, jobID, seekerID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (OwnedApplication, error)
	ListBySeeker(ctx context.Context, seekerID int64) ([]SeekerApplication, error)
	ListByJob(ctx context.Context, jobID int64) ([]Applicant, error)
	UpdateStatus(ctx context.Context, id int64, status application.Status, notes *string, reviewedAt *time.Time) error
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// Create relies on uq_applications_job_seeker to reject duplicates; the
// unique violation is returned to the caller untouched.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO applications (job_id, job_seeker_id, cover_letter, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.JobID, a.JobSeekerID, a.CoverLetter, string(a.Status),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresApplicationRepository) ExistsForSeeker(ctx context.Context, jobID, seekerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND job_seeker_id = $2)`,
		jobID, seekerID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id int64) (OwnedApplication, error) {
	var out OwnedApplication
	var status string
	err := r.db.QueryRow(ctx,
		`SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status, a.notes, a.applied_at, a.reviewed_at,
		        a.updated_at, j.employer_id
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.id = $1`,
		id,
	).Scan(&out.ID, &out.JobID, &out.JobSeekerID, &out.CoverLetter, &status, &out.Notes, &out.AppliedAt,
		&out.ReviewedAt, &out.UpdatedAt, &out.JobEmployerID)
	if err != nil {
		if isNoRows(err) {
			return OwnedApplication{}, ErrNotFound
		}
		return OwnedApplication{}, err
	}
	out.Status, err = application.ParseStatus(status)
	if err != nil {
		return OwnedApplication{}, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListBySeeker(ctx context.Context, seekerID int64) ([]SeekerApplication, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status, a.notes, a.applied_at, a.reviewed_at,
		        a.updated_at, j.title, j.job_type, j.location, j.status, c.company_name, c.logo
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE a.job_seeker_id = $1
		 ORDER BY a.applied_at DESC, a.id DESC`,
		seekerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SeekerApplication, 0)
	for rows.Next() {
		var it SeekerApplication
		var status string
		if err := rows.Scan(&it.ID, &it.JobID, &it.JobSeekerID, &it.CoverLetter, &status, &it.Notes, &it.AppliedAt,
			&it.ReviewedAt, &it.UpdatedAt, &it.JobTitle, &it.JobType, &it.JobLocation, &it.JobStatus,
			&it.CompanyName, &it.CompanyLogo); err != nil {
			return nil, err
		}
		if it.Status, err = application.ParseStatus(status); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]Applicant, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.job_id, a.job_seeker_id, a.cover_letter, a.status, a.notes, a.applied_at, a.reviewed_at,
		        a.updated_at, u.first_name, u.last_name, u.email, u.phone, u.profile_photo,
		        js.bio, js.current_position, js.experience_years, js.resume_path
		 FROM applications a
		 JOIN users u ON u.id = a.job_seeker_id
		 LEFT JOIN job_seekers js ON js.user_id = a.job_seeker_id
		 WHERE a.job_id = $1
		 ORDER BY a.applied_at DESC, a.id DESC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Applicant, 0)
	for rows.Next() {
		var it Applicant
		var status string
		if err := rows.Scan(&it.ID, &it.JobID, &it.JobSeekerID, &it.CoverLetter, &status, &it.Notes, &it.AppliedAt,
			&it.ReviewedAt, &it.UpdatedAt, &it.FirstName, &it.LastName, &it.Email, &it.Phone, &it.ProfilePhoto,
			&it.Bio, &it.CurrentPosition, &it.ExperienceYears, &it.ResumePath); err != nil {
			return nil, err
		}
		if it.Status, err = application.ParseStatus(status); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus keeps the existing notes and reviewed_at when the new values
// are nil.
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id int64, status application.Status, notes *string, reviewedAt *time.Time) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET status = $1,
		     notes = COALESCE($2, notes),
		     reviewed_at = COALESCE($3, reviewed_at),
		     updated_at = now()
		 WHERE id = $4`,
		string(status), notes, reviewedAt, id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
