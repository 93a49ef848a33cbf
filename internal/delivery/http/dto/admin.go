package dto

import (
	"time"

	"skill-hire/internal/repository"
)

type AdminLogResponse struct {
	ID          int64     `json:"id"`
	AdminID     int64     `json:"admin_id"`
	AdminEmail  string    `json:"admin_email"`
	ActionType  string    `json:"action_type"`
	TargetType  string    `json:"target_type"`
	TargetID    int64     `json:"target_id"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromAdminLog(_ int, l repository.AdminLog) AdminLogResponse {
	return AdminLogResponse{
		ID:          l.ID,
		AdminID:     l.AdminID,
		AdminEmail:  l.AdminEmail,
		ActionType:  l.ActionType,
		TargetType:  l.TargetType,
		TargetID:    l.TargetID,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
	}
}
