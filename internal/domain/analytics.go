package domain

import "time"

type CountByKey struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Analytics is the admin dashboard snapshot. Only active users are counted
// per role.
type Analytics struct {
	UsersByRole          []CountByKey `json:"users_by_role"`
	JobsByStatus         []CountByKey `json:"jobs_by_status"`
	ApplicationsByStatus []CountByKey `json:"applications_by_status"`
	RecentJobsDaily      []DailyCount `json:"recent_jobs"`
	RecentUsersDaily     []DailyCount `json:"recent_users"`
	GeneratedAt          time.Time    `json:"generated_at"`
}

type HealthStatus struct {
	DatabaseHealthy bool      `json:"database_healthy"`
	RedisHealthy    bool      `json:"redis_healthy"`
	WSClients       int       `json:"ws_clients"`
	ServerTime      time.Time `json:"server_time"`
}
