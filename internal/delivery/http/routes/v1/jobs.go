package v1

import (
	"skill-hire/internal/delivery/http/handler"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts the fixed paths before /:id so they are not taken
// for an id.
func RegisterJobs(r fiber.Router, jobs *handler.JobHandler, recs *handler.JobRecommendationHandler, authMw fiber.Handler) {
	if r == nil || jobs == nil {
		return
	}
	employer := middleware.RequireRoles(user.RoleEmployer)

	r.Get("/", jobs.List)
	r.Post("/", authMw, employer, jobs.Create)
	r.Get("/my-jobs", authMw, employer, jobs.ListMine)
	if recs != nil {
		r.Get("/recommended/:userId", authMw, recs.GetRecommendations)
	}
	r.Get("/:id", jobs.Get)
	r.Patch("/:id/close", authMw, employer, jobs.Close)
}

func RegisterApplications(r fiber.Router, apps *handler.ApplicationHandler) {
	if r == nil || apps == nil {
		return
	}
	seeker := middleware.RequireRoles(user.RoleJobSeeker)
	employer := middleware.RequireRoles(user.RoleEmployer)

	r.Post("/", seeker, apps.Apply)
	r.Get("/my-applications", seeker, apps.Mine)
	r.Get("/job/:jobId", employer, apps.ListForJob)
	r.Patch("/:id/status", employer, apps.UpdateStatus)
	r.Patch("/:id/withdraw", seeker, apps.Withdraw)
}
