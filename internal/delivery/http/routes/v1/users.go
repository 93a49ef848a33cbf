package v1

import (
	"skill-hire/internal/delivery/http/handler"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, users *handler.UserHandler) {
	if r == nil || users == nil {
		return
	}
	seeker := middleware.RequireRoles(user.RoleJobSeeker)

	r.Get("/profile", users.GetProfile)
	r.Put("/profile", users.UpdateProfile)

	r.Get("/skills", users.ListSkills)
	r.Post("/skills", users.AddSkill)
	r.Get("/skills/suggestions", seeker, users.SkillSuggestions)
	r.Delete("/skills/:skillId", users.RemoveSkill)

	r.Get("/saved-jobs", seeker, users.ListSavedJobs)
	r.Post("/saved-jobs", seeker, users.SaveJob)
	r.Delete("/saved-jobs/:jobId", seeker, users.RemoveSavedJob)
}

func RegisterCompanies(r fiber.Router, companies *handler.CompanyHandler, authMw fiber.Handler) {
	if r == nil || companies == nil {
		return
	}
	employer := middleware.RequireRoles(user.RoleEmployer)

	r.Get("/my-company", authMw, employer, companies.Mine)
	r.Post("/", authMw, employer, companies.Save)
	r.Get("/:id", companies.Get)
}

func RegisterAdmin(r fiber.Router, admin *handler.AdminHandler) {
	if r == nil || admin == nil {
		return
	}
	admin.RegisterRoutes(r.Group("", middleware.RequireRoles(user.RoleAdmin)))
}
