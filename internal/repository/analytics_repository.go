package repository

import (
	"context"

	"skill-hire/internal/database"
	"skill-hire/internal/domain"
)

type AnalyticsRepository interface {
	ActiveUsersByRole(ctx context.Context) ([]domain.CountByKey, error)
	JobsByStatus(ctx context.Context) ([]domain.CountByKey, error)
	ApplicationsByStatus(ctx context.Context) ([]domain.CountByKey, error)
	DailyNewJobs(ctx context.Context, days int) ([]domain.DailyCount, error)
	DailyNewUsers(ctx context.Context, days int) ([]domain.DailyCount, error)
}

type PostgresAnalyticsRepository struct {
	db database.DB
}

func NewPostgresAnalyticsRepository(db database.DB) *PostgresAnalyticsRepository {
	return &PostgresAnalyticsRepository{db: db}
}

func (r *PostgresAnalyticsRepository) ActiveUsersByRole(ctx context.Context) ([]domain.CountByKey, error) {
	return r.countBy(ctx, `SELECT role, COUNT(*) FROM users WHERE is_active GROUP BY role ORDER BY role`)
}

func (r *PostgresAnalyticsRepository) JobsByStatus(ctx context.Context) ([]domain.CountByKey, error) {
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status ORDER BY status`)
}

func (r *PostgresAnalyticsRepository) ApplicationsByStatus(ctx context.Context) ([]domain.CountByKey, error) {
	return r.countBy(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status ORDER BY status`)
}

func (r *PostgresAnalyticsRepository) DailyNewJobs(ctx context.Context, days int) ([]domain.DailyCount, error) {
	return r.daily(ctx, `SELECT to_char(created_at::date, 'YYYY-MM-DD'), COUNT(*)
		FROM jobs
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY created_at::date
		ORDER BY created_at::date`, days)
}

func (r *PostgresAnalyticsRepository) DailyNewUsers(ctx context.Context, days int) ([]domain.DailyCount, error) {
	return r.daily(ctx, `SELECT to_char(created_at::date, 'YYYY-MM-DD'), COUNT(*)
		FROM users
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY created_at::date
		ORDER BY created_at::date`, days)
}

func (r *PostgresAnalyticsRepository) countBy(ctx context.Context, q string) ([]domain.CountByKey, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CountByKey, 0)
	for rows.Next() {
		var it domain.CountByKey
		if err := rows.Scan(&it.Key, &it.Count); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAnalyticsRepository) daily(ctx context.Context, q string, days int) ([]domain.DailyCount, error) {
	rows, err := r.db.Query(ctx, q, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DailyCount, 0)
	for rows.Next() {
		var it domain.DailyCount
		if err := rows.Scan(&it.Date, &it.Count); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
