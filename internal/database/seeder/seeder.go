package seeder

import (
	"context"

	"skill-hire/internal/database"
)

// Seeder inserts reference data. Runs must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
