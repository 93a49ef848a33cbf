package ws

import (
	"encoding/json"
	"time"
)

const EventJobsUpdated = "jobs_updated"

type JobsUpdatedEvent struct {
	Type      string `json:"type"`
	JobID     int64  `json:"job_id"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NotifyJobsUpdated tells connected job feeds that the listing changed.
func (h *Hub) NotifyJobsUpdated(jobID int64, status string) {
	if h == nil {
		return
	}
	b, err := json.Marshal(JobsUpdatedEvent{
		Type:      EventJobsUpdated,
		JobID:     jobID,
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
