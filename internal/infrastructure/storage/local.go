package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local writes uploads below a directory that the HTTP server exposes
// under urlPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) *Local {
	if dir == "" {
		dir = "uploads"
	}
	return &Local{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (l *Local) Dir() string { return l.dir }

func (l *Local) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}

	full := filepath.Join(l.dir, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.urlPrefix + "/" + k, nil
}

func (l *Local) Delete(_ context.Context, ref string) error {
	k, err := cleanKey(strings.TrimPrefix(ref, l.urlPrefix))
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(l.dir, filepath.FromSlash(k)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
