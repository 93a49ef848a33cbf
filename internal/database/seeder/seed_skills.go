package seeder

import (
	"context"

	"skill-hire/internal/database"
)

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

var defaultSkills = []struct {
	Name     string
	Category string
}{
	{Name: "JavaScript", Category: "Programming"},
	{Name: "TypeScript", Category: "Programming"},
	{Name: "Python", Category: "Programming"},
	{Name: "Java", Category: "Programming"},
	{Name: "Go", Category: "Programming"},
	{Name: "PHP", Category: "Programming"},
	{Name: "C#", Category: "Programming"},
	{Name: "React", Category: "Frontend"},
	{Name: "Vue.js", Category: "Frontend"},
	{Name: "Angular", Category: "Frontend"},
	{Name: "HTML", Category: "Frontend"},
	{Name: "CSS", Category: "Frontend"},
	{Name: "Node.js", Category: "Backend"},
	{Name: "Express", Category: "Backend"},
	{Name: "Django", Category: "Backend"},
	{Name: "Laravel", Category: "Backend"},
	{Name: "Spring Boot", Category: "Backend"},
	{Name: "MySQL", Category: "Database"},
	{Name: "PostgreSQL", Category: "Database"},
	{Name: "MongoDB", Category: "Database"},
	{Name: "Redis", Category: "Database"},
	{Name: "Docker", Category: "DevOps"},
	{Name: "Kubernetes", Category: "DevOps"},
	{Name: "AWS", Category: "Cloud"},
	{Name: "GCP", Category: "Cloud"},
	{Name: "Git", Category: "Tools"},
	{Name: "Figma", Category: "Design"},
	{Name: "Project Management", Category: "Soft Skills"},
	{Name: "Communication", Category: "Soft Skills"},
	{Name: "Data Analysis", Category: "Data"},
	{Name: "Machine Learning", Category: "Data"},
}

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range defaultSkills {
			if _, err := tx.Exec(ctx,
				`INSERT INTO skills (name, category) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				it.Name, it.Category,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
