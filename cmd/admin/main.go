package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"skill-hire/internal/app"
	"skill-hire/internal/config"
	"skill-hire/internal/database/seeder"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/infrastructure/persistence/postgres"
	"skill-hire/internal/usecase/auth"
)

const usage = `usage: admin <command> [flags]

commands:
  migrate          apply pending migrations
  migrate-status   show applied and pending migrations
  seed             insert default skills and the admin account
  reset-admin      reset the admin password (-password, default ADMIN_PASSWORD)
  hash-password    print a bcrypt hash for -password
  list-users       list users (-role, -search, -limit)
`

var commands = map[string]bool{
	"migrate":        true,
	"migrate-status": true,
	"seed":           true,
	"reset-admin":    true,
	"hash-password":  true,
	"list-users":     true,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens
// before the process exits.
func run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 || !commands[argv[0]] {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, args := argv[0], argv[1:]
	logger := log.New(stderr, "", log.LstdFlags)

	// hash-password needs no database or config.
	if cmd == "hash-password" {
		fs := newFlagSet(cmd, stderr)
		password := fs.String("password", "admin123", "password to hash")
		if err := fs.Parse(args); err != nil {
			return 2
		}
		hash, err := auth.HashPassword(*password)
		if err != nil {
			logger.Printf("hash password: %v", err)
			return 1
		}
		fmt.Fprintln(stdout, hash)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("failed to load config: %v", err)
		return 1
	}

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Printf("failed to init container: %v", err)
		return 1
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Printf("close: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch cmd {
	case "migrate":
		err = c.Migrate(ctx)
	case "migrate-status":
		err = migrateStatus(ctx, c, stdout)
	case "seed":
		err = c.Seed(ctx)
	case "reset-admin":
		err = resetAdmin(ctx, c, args, stderr)
	case "list-users":
		err = listUsers(ctx, c, args, stdout, stderr)
	}
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, errBadFlags) {
		return 2
	}
	if err != nil {
		logger.Printf("%s failed: %v", cmd, err)
		return 1
	}
	return 0
}

var errBadFlags = errors.New("invalid flags")

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errBadFlags, err)
	}
	return nil
}

func resetAdmin(ctx context.Context, c *app.Container, args []string, stderr io.Writer) error {
	fs := newFlagSet("reset-admin", stderr)
	password := fs.String("password", c.Config.Admin.Password, "new admin password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	s := seeder.AdminSeeder{Email: c.Config.Admin.Email, Password: *password}
	if err := s.Run(ctx, c.DB); err != nil {
		return err
	}
	c.Logger.Printf("[Admin] password reset email=%s", c.Config.Admin.Email)
	return nil
}

func migrateStatus(ctx context.Context, c *app.Container, stdout io.Writer) error {
	statuses, err := c.MigrationRunner().Status(ctx, c.DB.SQLDB())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED_AT")
	for _, s := range statuses {
		state := "pending"
		switch {
		case s.Drifted:
			state = "drifted"
		case s.Applied:
			state = "applied"
		}
		at := "-"
		if s.Applied {
			at = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Name, state, at)
	}
	return w.Flush()
}

func listUsers(ctx context.Context, c *app.Container, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("list-users", stderr)
	role := fs.String("role", "", "job_seeker, employer or admin")
	search := fs.String("search", "", "match email or name")
	limit := fs.Int("limit", 50, "max rows")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f := user.ListFilter{Search: strings.TrimSpace(*search), Limit: *limit}
	if *role != "" {
		r, err := user.ParseRole(*role)
		if err != nil {
			return err
		}
		f.Role = &r
	}

	users, err := postgres.NewUserRepository(c.DB).List(ctx, f)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tROLE\tNAME\tACTIVE\tCREATED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s %s\t%t\t%s\n",
			u.ID, u.Email, u.Role, u.FirstName, u.LastName, u.IsActive, u.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}
