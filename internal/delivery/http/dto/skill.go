package dto

import "skill-hire/internal/domain/skill"

type SkillResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type UserSkillResponse struct {
	ID                int64  `json:"id"`
	SkillID           int64  `json:"skill_id"`
	SkillName         string `json:"skill_name"`
	Category          string `json:"category"`
	ProficiencyLevel  string `json:"proficiency_level"`
	YearsOfExperience int    `json:"years_of_experience"`
}

func FromSkill(_ int, s skill.Skill) SkillResponse {
	return SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category}
}

func FromUserSkill(_ int, s skill.UserSkill) UserSkillResponse {
	return UserSkillResponse{
		ID:                s.ID,
		SkillID:           s.SkillID,
		SkillName:         s.SkillName,
		Category:          s.Category,
		ProficiencyLevel:  string(s.ProficiencyLevel),
		YearsOfExperience: s.YearsOfExperience,
	}
}
