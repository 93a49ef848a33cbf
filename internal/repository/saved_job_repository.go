package repository

import (
	"context"
	"time"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/job"
)

type SavedJob struct {
	Job     job.Job
	SavedAt time.Time
}

type SavedJobRepository interface {
	// Save is idempotent; saving an already saved job is not an error.
	Save(ctx context.Context, seekerID, jobID int64) error
	ListActive(ctx context.Context, seekerID int64) ([]SavedJob, error)
	Delete(ctx context.Context, seekerID, jobID int64) error
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, seekerID, jobID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (job_id, job_seeker_id) VALUES ($1, $2)
		 ON CONFLICT (job_id, job_seeker_id) DO NOTHING`,
		jobID, seekerID,
	)
	return err
}

func (r *PostgresSavedJobRepository) ListActive(ctx context.Context, seekerID int64) ([]SavedJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`, sj.saved_at
		 FROM saved_jobs sj
		 JOIN jobs j ON j.id = sj.job_id
		 LEFT JOIN companies c ON c.id = j.company_id
		 WHERE sj.job_seeker_id = $1 AND j.status = 'active'
		 ORDER BY sj.saved_at DESC, sj.id DESC`,
		seekerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SavedJob, 0)
	for rows.Next() {
		var sj SavedJob
		j, err := scanJob(savedAtScanner{rows: rows, savedAt: &sj.SavedAt})
		if err != nil {
			return nil, err
		}
		sj.Job = j
		out = append(out, sj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, seekerID, jobID int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE job_id = $1 AND job_seeker_id = $2`, jobID, seekerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// savedAtScanner appends the saved_at destination to a job scan.
type savedAtScanner struct {
	rows    rowScanner
	savedAt *time.Time
}

func (s savedAtScanner) Scan(dest ...any) error {
	return s.rows.Scan(append(dest, s.savedAt)...)
}
