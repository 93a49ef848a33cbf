package repository

import (
	"context"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/job"
)

type JobSkillRepository interface {
	// SkillIDsByJobIDs returns the skill-id set of every requested job. Jobs
	// with no requirements are absent from the map.
	SkillIDsByJobIDs(ctx context.Context, jobIDs []int64) (map[int64][]int64, error)
	// FindByJobIDs returns skill id, name and category per job.
	FindByJobIDs(ctx context.Context, jobIDs []int64) (map[int64][]job.SkillRequirement, error)
}

type PostgresJobSkillRepository struct {
	db database.DB
}

func NewPostgresJobSkillRepository(db database.DB) *PostgresJobSkillRepository {
	return &PostgresJobSkillRepository{db: db}
}

func (r *PostgresJobSkillRepository) SkillIDsByJobIDs(ctx context.Context, jobIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT job_id, skill_id FROM job_skills WHERE job_id = ANY($1) ORDER BY job_id, skill_id`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID, skillID int64
		if err := rows.Scan(&jobID, &skillID); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], skillID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobSkillRepository) FindByJobIDs(ctx context.Context, jobIDs []int64) (map[int64][]job.SkillRequirement, error) {
	out := make(map[int64][]job.SkillRequirement, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT js.job_id, s.id, s.name, s.category, js.is_required
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = ANY($1)
		 ORDER BY js.job_id, s.name ASC`,
		jobIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it job.SkillRequirement
		if err := rows.Scan(&it.JobID, &it.SkillID, &it.SkillName, &it.Category, &it.IsRequired); err != nil {
			return nil, err
		}
		out[it.JobID] = append(out[it.JobID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
