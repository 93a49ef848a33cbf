package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"skill-hire/internal/config"

	"github.com/google/uuid"
)

var ErrInvalidKey = errors.New("invalid object key")

// Store persists uploaded files and returns the URL clients should use to
// fetch them. Delete accepts either that URL or the raw key.
type Store interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// New picks the backend configured by STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.UploadDir, "/uploads"), nil
	case "s3":
		return NewS3(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectKey builds a collision-free key such as "resumes/<uuid>.pdf".
func ObjectKey(folder, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return path.Join(folder, name)
}

func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	k := path.Clean("/" + key)
	if k == "/" {
		return "", ErrInvalidKey
	}
	return strings.TrimPrefix(k, "/"), nil
}
