package migration

import (
	"cmp"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Runner applies forward-only V<n>__name.sql files. FS wins over Dir when set.
type Runner struct {
	Dir    string
	FS     fs.FS
	Logger *log.Logger
}

// lockKey identifies the migration advisory lock across all app instances.
const lockKey int64 = 0x736b696c6c68 // "skillh"

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	migs, err := r.load()
	if err != nil {
		return err
	}
	if len(migs) == 0 {
		r.logf("[Migration] nothing to apply")
		return nil
	}

	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return err
	}

	// Session advisory locks belong to a connection, so lock and unlock must
	// share one.
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return fmt.Errorf("acquire migration lock: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockKey)
	}()

	applied, err := getApplied(ctx, db)
	if err != nil {
		return err
	}

	n := 0
	for _, m := range migs {
		if a, ok := applied[m.Version]; ok {
			if a.Checksum != m.Checksum {
				return fmt.Errorf("migration checksum mismatch: version=%d name=%s", m.Version, m.Name)
			}
			continue
		}

		start := time.Now()
		if err := applyOne(ctx, db, m); err != nil {
			return err
		}
		n++
		r.logf("[Migration] applied version=%d name=%s took=%s", m.Version, m.Name, time.Since(start).Round(time.Millisecond))
	}
	r.logf("[Migration] done applied=%d known=%d", n, len(migs))
	return nil
}

func (r Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// Status reports which known migrations are applied. It does not take the
// advisory lock.
func (r Runner) Status(ctx context.Context, db *sql.DB) ([]MigrationStatus, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	migs, err := r.load()
	if err != nil {
		return nil, err
	}
	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return nil, err
	}
	applied, err := getApplied(ctx, db)
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(migs))
	for _, m := range migs {
		a, ok := applied[m.Version]
		out = append(out, MigrationStatus{
			Version:   m.Version,
			Name:      m.Name,
			Applied:   ok,
			AppliedAt: a.AppliedAt,
			Drifted:   ok && a.Checksum != m.Checksum,
		})
	}
	return out, nil
}

type MigrationStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt time.Time
	Drifted   bool
}

func (r Runner) load() ([]Migration, error) {
	if r.FS != nil {
		return loadMigrations(r.FS)
	}
	dir, err := resolveDir(r.Dir)
	if err != nil {
		return nil, err
	}
	return loadMigrations(os.DirFS(dir))
}

// Migration is one V<version>__<name>.sql file. Checksum covers the trimmed
// SQL so editor whitespace never counts as drift.
type Migration struct {
	Version  int64
	Name     string
	Filename string
	SQL      string
	Checksum string
}

type appliedMigration struct {
	Checksum  string
	AppliedAt time.Time
}

var fileRe = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

func resolveDir(dir string) (string, error) {
	if dir = strings.TrimSpace(dir); dir != "" {
		return dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate migrations: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "migrations"), nil
}

func parseMigration(fsys fs.FS, filename string) (Migration, bool, error) {
	parts := fileRe.FindStringSubmatch(filename)
	if parts == nil {
		return Migration{}, false, nil
	}
	version, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Migration{}, false, fmt.Errorf("invalid migration version: %s", filename)
	}
	raw, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return Migration{}, false, err
	}
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return Migration{}, false, fmt.Errorf("empty migration file: %s", filename)
	}
	sum := sha256.Sum256([]byte(body))
	return Migration{
		Version:  version,
		Name:     parts[2],
		Filename: filename,
		SQL:      body,
		Checksum: hex.EncodeToString(sum[:]),
	}, true, nil
}

func loadMigrations(fsys fs.FS) ([]Migration, error) {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]string, len(names))
	migs := make([]Migration, 0, len(names))
	for _, name := range names {
		m, ok, err := parseMigration(fsys, name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if prev, dup := seen[m.Version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", m.Version, prev, name)
		}
		seen[m.Version] = name
		migs = append(migs, m)
	}

	slices.SortFunc(migs, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return migs, nil
}

func ensureSchemaMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func getApplied(ctx context.Context, db *sql.DB) (map[int64]appliedMigration, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int64]appliedMigration)
	for rows.Next() {
		var (
			version int64
			am      appliedMigration
		)
		if err := rows.Scan(&version, &am.Checksum, &am.AppliedAt); err != nil {
			return nil, err
		}
		applied[version] = am
	}
	return applied, rows.Err()
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply migration failed: version=%d file=%s: %w", m.Version, m.Filename, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		m.Version, m.Name, m.Checksum,
	); err != nil {
		return err
	}
	return tx.Commit()
}
