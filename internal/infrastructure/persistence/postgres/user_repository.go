package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/user"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const userColumns = `id, email, password_hash, role, first_name, last_name, phone, profile_photo,
	is_verified, is_active, created_at, updated_at`

type UserRepository struct {
	db database.DB
}

func NewUserRepository(db database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	var created user.User
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`INSERT INTO users (email, password_hash, role, first_name, last_name, phone, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			 RETURNING `+userColumns,
			u.Email, u.PasswordHash, string(u.Role), u.FirstName, u.LastName, u.Phone,
		)
		var err error
		created, err = scanUser(row)
		if err != nil {
			return err
		}

		if created.Role == user.RoleJobSeeker {
			if _, err := tx.Exec(ctx, `INSERT INTO job_seekers (user_id) VALUES ($1)`, created.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) GetSeekerProfile(ctx context.Context, userID int64) (user.SeekerProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, bio, current_position, experience_years, education_level, location,
		        resume_path, resume_text, updated_at
		 FROM job_seekers WHERE user_id = $1`,
		userID,
	)
	var p user.SeekerProfile
	err := row.Scan(&p.UserID, &p.Bio, &p.CurrentPosition, &p.ExperienceYears, &p.EducationLevel,
		&p.Location, &p.ResumePath, &p.ResumeText, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.SeekerProfile{}, user.ErrNotFound
		}
		return user.SeekerProfile{}, err
	}
	return p, nil
}

// UpdateProfile writes only the non-nil fields. Seeker fields go to
// job_seekers, which is created on demand.
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, in user.ProfileUpdate) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		sets, args := buildSets([]setField{
			{"first_name", in.FirstName},
			{"last_name", in.LastName},
			{"phone", in.Phone},
			{"profile_photo", in.ProfilePhoto},
		})
		if len(sets) > 0 {
			args = append(args, userID)
			q := fmt.Sprintf(`UPDATE users SET %s, updated_at = now() WHERE id = $%d`, strings.Join(sets, ", "), len(args))
			n, err := tx.Exec(ctx, q, args...)
			if err != nil {
				return err
			}
			if n == 0 {
				return user.ErrNotFound
			}
		}

		var years any
		if in.ExperienceYears != nil {
			years = *in.ExperienceYears
		}
		sets, args = buildSets([]setField{
			{"bio", in.Bio},
			{"current_position", in.CurrentPosition},
			{"experience_years", years},
			{"education_level", in.EducationLevel},
			{"location", in.Location},
			{"resume_path", in.ResumePath},
			{"resume_text", in.ResumeText},
		})
		if len(sets) == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, `INSERT INTO job_seekers (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
			return err
		}
		args = append(args, userID)
		q := fmt.Sprintf(`UPDATE job_seekers SET %s, updated_at = now() WHERE user_id = $%d`, strings.Join(sets, ", "), len(args))
		_, err := tx.Exec(ctx, q, args...)
		return err
	})
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = now() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetPasswordHash(ctx context.Context, id int64, hash string) error {
	n, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, f user.ListFilter) ([]user.User, error) {
	where, args := userListWhere(f)
	args = append(args, f.Limit, f.Offset)
	q := fmt.Sprintf(`SELECT %s FROM users %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context, f user.ListFilter) (int64, error) {
	where, args := userListWhere(f)
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users `+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func userListWhere(f user.ListFilter) (string, []any) {
	conds := make([]string, 0, 2)
	args := make([]any, 0, 2)
	if f.Role != nil {
		args = append(args, string(*f.Role))
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)", n, n, n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

type setField struct {
	column string
	value  any
}

// buildSets turns non-nil values into "col = $n" fragments. Typed nil
// pointers count as absent.
func buildSets(fields []setField) ([]string, []any) {
	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		if isNil(f.value) {
			continue
		}
		args = append(args, f.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", f.column, len(args)))
	}
	return sets, args
}

func isNil(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case *string:
		return t == nil
	case *int:
		return t == nil
	default:
		return false
	}
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.FirstName, &u.LastName, &u.Phone,
		&u.ProfilePhoto, &u.IsVerified, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role, err = user.ParseRole(role)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}
