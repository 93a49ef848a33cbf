package seeder

import "skill-hire/internal/config"

func Defaults(admin config.AdminConfig) []Seeder {
	return []Seeder{
		SkillsSeeder{},
		AdminSeeder{Email: admin.Email, Password: admin.Password},
	}
}
