package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"skill-hire/internal/config"
	"skill-hire/internal/delivery/http/handler"
	"skill-hire/internal/delivery/http/middleware"
	"skill-hire/internal/delivery/http/routes"
	v1 "skill-hire/internal/delivery/http/routes/v1"
	"skill-hire/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of a fully built container.
func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    bodyLimit(cfg.Storage),
	})

	registerGlobalMiddleware(f, cfg, c.Logger, c.Registry)

	authMw := middleware.NewAuthMiddleware(c.JWT, c.Repos.Users)
	uc := c.Usecases
	registry := routes.NewRegistry(routes.Options{
		Health:    handler.NewHealthHandler(uc.Health),
		WS:        ws.NewHandler(c.Hub, cfg.App.CORSOrigins, c.Logger),
		Gatherer:  c.Registry,
		UploadDir: localUploadDir(cfg.Storage),
		API: v1.Handlers{
			Auth:            handler.NewAuthHandler(uc.Auth),
			Jobs:            handler.NewJobHandler(uc.Jobs),
			Recommendations: handler.NewJobRecommendationHandler(uc.Recommendations),
			Applications:    handler.NewApplicationHandler(uc.Applications),
			Users:           handler.NewUserHandler(uc.Users, uc.UserSkills, uc.SavedJobs),
			Skills:          handler.NewSkillHandler(uc.Skills),
			Companies:       handler.NewCompanyHandler(uc.Companies),
			Admin:           handler.NewAdminHandler(uc.Admin),
		},
		Guards: v1.Guards{
			Auth:         authMw.Middleware(),
			LoginLimiter: middleware.RateLimiter(cfg.RateLimit.LoginMax, cfg.RateLimit.LoginWindow),
		},
	})
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency and returns the app plus the cleanup
// that releases them.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Build(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *log.Logger, reg prometheus.Registerer) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	if reg != nil {
		app.Use(middleware.NewMetricsBuilder(reg).Build())
	}
	app.Use(cors.New(corsConfig(cfg.App)))
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func corsConfig(cfg config.AppConfig) cors.Config {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}
}

// bodyLimit leaves room for a profile update carrying both a photo and a
// resume.
func bodyLimit(cfg config.StorageConfig) int {
	limit := 2*cfg.MaxFileSize + 1<<20
	if limit <= 0 {
		return 4 << 20
	}
	return int(limit)
}

func localUploadDir(cfg config.StorageConfig) string {
	if cfg.Driver == "" || cfg.Driver == "local" {
		return cfg.UploadDir
	}
	return ""
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
