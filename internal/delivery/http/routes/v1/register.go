package v1

import (
	"skill-hire/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth            *handler.AuthHandler
	Jobs            *handler.JobHandler
	Recommendations *handler.JobRecommendationHandler
	Applications    *handler.ApplicationHandler
	Users           *handler.UserHandler
	Skills          *handler.SkillHandler
	Companies       *handler.CompanyHandler
	Admin           *handler.AdminHandler
}

// Guards are the middlewares the route groups are wrapped in. LoginLimiter
// may be nil.
type Guards struct {
	Auth         fiber.Handler
	LoginLimiter fiber.Handler
}

func Register(r fiber.Router, h Handlers, g Guards) {
	if r == nil || g.Auth == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"), g.Auth, g.LoginLimiter)
	}
	if h.Skills != nil {
		h.Skills.RegisterRoutes(r.Group("/skills"))
	}
	RegisterJobs(r.Group("/jobs"), h.Jobs, h.Recommendations, g.Auth)
	RegisterApplications(r.Group("/applications", g.Auth), h.Applications)
	RegisterUsers(r.Group("/users", g.Auth), h.Users)
	RegisterCompanies(r.Group("/companies"), h.Companies, g.Auth)
	RegisterAdmin(r.Group("/admin", g.Auth), h.Admin)
}
