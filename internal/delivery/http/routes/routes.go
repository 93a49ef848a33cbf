package routes

import (
	"skill-hire/internal/delivery/http/handler"
	v1 "skill-hire/internal/delivery/http/routes/v1"
	"skill-hire/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	health   *handler.HealthHandler
	ws       *ws.Handler
	gatherer prometheus.Gatherer
	// uploadDir is served under /uploads when files are stored locally.
	uploadDir string
	api       v1.Handlers
	guards    v1.Guards
}

type Options struct {
	Health    *handler.HealthHandler
	WS        *ws.Handler
	Gatherer  prometheus.Gatherer
	UploadDir string
	API       v1.Handlers
	Guards    v1.Guards
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		health:    opts.Health,
		ws:        opts.WS,
		gatherer:  opts.Gatherer,
		uploadDir: opts.UploadDir,
		api:       opts.API,
		guards:    opts.Guards,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerMetrics(app)
	r.registerRealtime(app)
	r.registerUploads(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerMetrics(app *fiber.App) {
	if r.gatherer == nil {
		return
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
}

func (r *Registry) registerRealtime(app *fiber.App) {
	if r.ws != nil {
		app.Get("/ws/jobs", r.ws.HandleJobsWS)
	}
}

func (r *Registry) registerUploads(app *fiber.App) {
	if r.uploadDir != "" {
		app.Use("/uploads", static.New(r.uploadDir))
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.api, r.guards)
}
