package repository

import (
	"context"

	"skill-hire/internal/database"
	"skill-hire/internal/domain/skill"
)

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID int64) ([]skill.UserSkill, error)
	FindByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]skill.UserSkill, error)
	SkillIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	Upsert(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error)
	Delete(ctx context.Context, userID, skillID int64) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name, s.category, us.proficiency_level, us.years_of_experience
	FROM user_skills us
	JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID int64) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx, userSkillSelect+` WHERE us.user_id = $1 ORDER BY s.category, s.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		us, err := scanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) FindByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]skill.UserSkill, error) {
	out := make(map[int64][]skill.UserSkill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, userSkillSelect+` WHERE us.user_id = ANY($1) ORDER BY us.user_id, s.name`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		us, err := scanUserSkill(rows)
		if err != nil {
			return nil, err
		}
		out[us.UserID] = append(out[us.UserID], us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) SkillIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT skill_id FROM user_skills WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert adds the skill or updates proficiency and years when the user
// already has it.
func (r *PostgresUserSkillRepository) Upsert(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO user_skills (user_id, skill_id, proficiency_level, years_of_experience)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, skill_id)
		 DO UPDATE SET proficiency_level = EXCLUDED.proficiency_level, years_of_experience = EXCLUDED.years_of_experience
		 RETURNING id`,
		us.UserID, us.SkillID, string(us.ProficiencyLevel), us.YearsOfExperience,
	).Scan(&id)
	if err != nil {
		return skill.UserSkill{}, err
	}

	row := r.db.QueryRow(ctx, userSkillSelect+` WHERE us.id = $1`, id)
	return scanUserSkill(row)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID int64) error {
	n, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUserSkill(row rowScanner) (skill.UserSkill, error) {
	var us skill.UserSkill
	var level string
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Category, &level, &us.YearsOfExperience); err != nil {
		if isNoRows(err) {
			return skill.UserSkill{}, ErrNotFound
		}
		return skill.UserSkill{}, err
	}
	us.ProficiencyLevel = skill.Proficiency(level)
	return us, nil
}
