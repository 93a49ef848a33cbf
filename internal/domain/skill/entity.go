package skill

import (
	"fmt"
	"time"
)

type Skill struct {
	ID        int64
	Name      string
	Category  string
	CreatedAt time.Time
}

type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

var ErrUnknownProficiency = fmt.Errorf("unknown proficiency level")

// ParseProficiency treats an empty value as intermediate.
func ParseProficiency(s string) (Proficiency, error) {
	switch Proficiency(s) {
	case "":
		return ProficiencyIntermediate, nil
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return Proficiency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProficiency, s)
	}
}

// UserSkill is a user's claim to a skill. Proficiency and years are stored
// for display only.
type UserSkill struct {
	ID                int64
	UserID            int64
	SkillID           int64
	SkillName         string
	Category          string
	ProficiencyLevel  Proficiency
	YearsOfExperience int
}
