package repository

import (
	"context"
	"time"

	"skill-hire/internal/database"
)

const (
	AdminActionUserStatus = "update_user_status"
	AdminActionJobStatus  = "update_job_status"
	AdminActionJobDelete  = "delete_job"

	AdminTargetUser = "user"
	AdminTargetJob  = "job"
)

type AdminLog struct {
	ID          int64
	AdminID     int64
	AdminEmail  string
	ActionType  string
	TargetType  string
	TargetID    int64
	Description *string
	CreatedAt   time.Time
}

type AdminLogRepository interface {
	Create(ctx context.Context, l AdminLog) error
	List(ctx context.Context, limit, offset int) ([]AdminLog, error)
	Count(ctx context.Context) (int64, error)
}

type PostgresAdminLogRepository struct {
	db database.DB
}

func NewPostgresAdminLogRepository(db database.DB) *PostgresAdminLogRepository {
	return &PostgresAdminLogRepository{db: db}
}

func (r *PostgresAdminLogRepository) Create(ctx context.Context, l AdminLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO admin_logs (admin_id, action_type, target_type, target_id, description)
		 VALUES ($1, $2, $3, $4, $5)`,
		l.AdminID, l.ActionType, l.TargetType, l.TargetID, l.Description,
	)
	return err
}

func (r *PostgresAdminLogRepository) List(ctx context.Context, limit, offset int) ([]AdminLog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT l.id, l.admin_id, u.email, l.action_type, l.target_type, l.target_id, l.description, l.created_at
		 FROM admin_logs l
		 JOIN users u ON u.id = l.admin_id
		 ORDER BY l.created_at DESC, l.id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]AdminLog, 0)
	for rows.Next() {
		var l AdminLog
		if err := rows.Scan(&l.ID, &l.AdminID, &l.AdminEmail, &l.ActionType, &l.TargetType, &l.TargetID,
			&l.Description, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAdminLogRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_logs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
