package seeder

import (
	"context"
	"fmt"
	"strings"

	"skill-hire/internal/database"
	"skill-hire/internal/usecase/auth"
)

// AdminSeeder creates the admin account or resets its password and
// reactivates it when it already exists. A non-admin account holding the
// same email is left untouched.
type AdminSeeder struct {
	Email    string
	Password string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || s.Password == "" {
		return fmt.Errorf("admin email and password are required")
	}
	if err := EnsureTableColumns(ctx, db, "users", "email", "password_hash", "role", "is_active"); err != nil {
		return err
	}

	hash, err := auth.HashPassword(s.Password)
	if err != nil {
		return err
	}

	n, err := db.Exec(ctx,
		`INSERT INTO users (email, password_hash, role, first_name, last_name, is_verified, is_active)
		 VALUES ($1, $2, 'admin', 'Admin', 'User', TRUE, TRUE)
		 ON CONFLICT (email) DO UPDATE
		 SET password_hash = EXCLUDED.password_hash, is_active = TRUE, updated_at = now()
		 WHERE users.role = 'admin'`,
		email, hash,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("email %s belongs to a non-admin account", email)
	}
	return nil
}
