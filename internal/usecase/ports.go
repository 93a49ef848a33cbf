package usecase

import (
	"context"
	"time"
)

// Cache is the subset of the Redis wrapper the usecases depend on. A nil
// Cache disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateJobs(ctx context.Context) error
	JobsGeneration(ctx context.Context) (int64, error)
}

type JobsNotifier interface {
	NotifyJobsUpdated(jobID int64, status string)
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// FileStore saves uploads and returns their public URL.
type FileStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Upload is a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
