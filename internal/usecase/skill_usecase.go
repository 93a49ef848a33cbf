package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"skill-hire/internal/domain/skill"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/infrastructure/cache"
	"skill-hire/internal/infrastructure/resume"
	"skill-hire/internal/repository"
)

const MsgNoResumeForSuggestions = "Upload a resume to get skill suggestions."

type SkillUsecase interface {
	List(ctx context.Context, category string) ([]skill.Skill, error)
	Categories(ctx context.Context) ([]string, error)
}

type Skills struct {
	skills repository.SkillRepository
	cache  Cache
	logger *log.Logger
}

func NewSkillUsecase(skills repository.SkillRepository, cache Cache, logger *log.Logger) *Skills {
	return &Skills{skills: skills, cache: cache, logger: logger}
}

// List serves the catalogue from cache; the catalogue only changes through
// seeding so entries simply expire.
func (u *Skills) List(ctx context.Context, category string) ([]skill.Skill, error) {
	category = strings.TrimSpace(category)
	key := cache.SkillsPrefix + "list:" + category

	var out []skill.Skill
	if u.cache != nil {
		if hit, err := u.cache.GetJSON(ctx, key, &out); err == nil && hit {
			return out, nil
		}
	}

	out, err := u.skills.List(ctx, category)
	if err != nil {
		return nil, ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func (u *Skills) Categories(ctx context.Context) ([]string, error) {
	key := cache.SkillsPrefix + "categories"

	var out []string
	if u.cache != nil {
		if hit, err := u.cache.GetJSON(ctx, key, &out); err == nil && hit {
			return out, nil
		}
	}

	out, err := u.skills.Categories(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

type AddUserSkillInput struct {
	SkillID           int64
	ProficiencyLevel  string
	YearsOfExperience int
}

type SkillSuggestions struct {
	Skills  []skill.Skill
	Message string
}

type UserSkillUsecase interface {
	List(ctx context.Context, userID int64) ([]skill.UserSkill, error)
	Add(ctx context.Context, userID int64, in AddUserSkillInput) (skill.UserSkill, error)
	Remove(ctx context.Context, userID, skillID int64) error
	Suggestions(ctx context.Context, userID int64) (SkillSuggestions, error)
}

type UserSkills struct {
	userSkills repository.UserSkillRepository
	skills     repository.SkillRepository
	users      user.Repository
	logger     *log.Logger
}

func NewUserSkillUsecase(userSkills repository.UserSkillRepository, skills repository.SkillRepository, users user.Repository, logger *log.Logger) *UserSkills {
	return &UserSkills{userSkills: userSkills, skills: skills, users: users, logger: logger}
}

func (u *UserSkills) List(ctx context.Context, userID int64) ([]skill.UserSkill, error) {
	out, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// Add inserts the skill or, if the user already has it, updates the
// proficiency and years.
func (u *UserSkills) Add(ctx context.Context, userID int64, in AddUserSkillInput) (skill.UserSkill, error) {
	if in.SkillID <= 0 {
		return skill.UserSkill{}, invalid("Skill ID is required")
	}
	level, err := skill.ParseProficiency(strings.TrimSpace(in.ProficiencyLevel))
	if err != nil {
		return skill.UserSkill{}, invalid("Invalid proficiency level")
	}
	if in.YearsOfExperience < 0 {
		return skill.UserSkill{}, invalid("Years of experience must not be negative")
	}

	ok, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return skill.UserSkill{}, ErrInternal
	}
	if !ok {
		return skill.UserSkill{}, ErrSkillNotFound
	}

	out, err := u.userSkills.Upsert(ctx, skill.UserSkill{
		UserID:            userID,
		SkillID:           in.SkillID,
		ProficiencyLevel:  level,
		YearsOfExperience: in.YearsOfExperience,
	})
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return skill.UserSkill{}, ErrSkillNotFound
		}
		return skill.UserSkill{}, ErrInternal
	}
	return out, nil
}

func (u *UserSkills) Remove(ctx context.Context, userID, skillID int64) error {
	if err := u.userSkills.Delete(ctx, userID, skillID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

// Suggestions proposes catalogue skills named in the user's resume text.
func (u *UserSkills) Suggestions(ctx context.Context, userID int64) (SkillSuggestions, error) {
	p, err := u.users.GetSeekerProfile(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return SkillSuggestions{}, ErrInternal
	}
	if err != nil || p.ResumeText == nil || strings.TrimSpace(*p.ResumeText) == "" {
		return SkillSuggestions{Skills: []skill.Skill{}, Message: MsgNoResumeForSuggestions}, nil
	}

	catalogue, err := u.skills.List(ctx, "")
	if err != nil {
		return SkillSuggestions{}, ErrInternal
	}
	owned, err := u.userSkills.SkillIDsByUserID(ctx, userID)
	if err != nil {
		return SkillSuggestions{}, ErrInternal
	}
	return SkillSuggestions{Skills: resume.SuggestSkills(*p.ResumeText, catalogue, owned)}, nil
}
