package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"skill-hire/internal/config"
	"skill-hire/internal/database"
	"skill-hire/internal/database/migration"
	dbpostgres "skill-hire/internal/database/postgres"
	"skill-hire/internal/database/seeder"
	"skill-hire/internal/domain/user"
	"skill-hire/internal/infrastructure/cache"
	"skill-hire/internal/infrastructure/messaging"
	"skill-hire/internal/infrastructure/persistence/postgres"
	"skill-hire/internal/infrastructure/storage"
	"skill-hire/internal/pkg/jwt"
	"skill-hire/internal/repository"
	"skill-hire/internal/usecase"
	"skill-hire/internal/ws"
	"skill-hire/migrations"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container owns every long-lived dependency of the API process.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB        database.DB
	Cache     *cache.Redis
	Store     storage.Store
	Publisher messaging.Publisher
	Hub       *ws.Hub
	Registry  *prometheus.Registry
	JWT       jwt.Service

	Repos Repositories

	Usecases Usecases

	stopHub context.CancelFunc
}

type Repositories struct {
	Users      user.Repository
	Jobs       repository.JobRepository
	JobSkills  repository.JobSkillRepository
	Skills     repository.SkillRepository
	UserSkills repository.UserSkillRepository
	Companies  repository.CompanyRepository
	Apps       repository.ApplicationRepository
	SavedJobs  repository.SavedJobRepository
	AdminLogs  repository.AdminLogRepository
	Analytics  repository.AnalyticsRepository
}

type Usecases struct {
	Auth            *usecase.Auth
	Jobs            *usecase.Jobs
	Recommendations *usecase.JobRecommendation
	Applications    *usecase.Applications
	Users           *usecase.Users
	Skills          *usecase.Skills
	UserSkills      *usecase.UserSkills
	SavedJobs       *usecase.SavedJobs
	Companies       *usecase.Companies
	Admin           *usecase.Admin
	Health          *usecase.Health
}

func NewLogger() *log.Logger {
	return log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
}

// NewContainer connects the database only. Commands that need the full API
// graph call Build afterwards.
func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = NewLogger()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{Config: cfg, Logger: logger, DB: db}, nil
}

// Migrate applies the embedded migrations, or the ones in MIGRATIONS_DIR
// when it is set.
func (c *Container) Migrate(ctx context.Context) error {
	return c.MigrationRunner().Run(ctx, c.DB.SQLDB())
}

func (c *Container) MigrationRunner() migration.Runner {
	r := migration.Runner{FS: migrations.FS, Logger: c.Logger}
	if c.Config.Database.MigrationsDir != "" {
		r = migration.Runner{Dir: c.Config.Database.MigrationsDir, Logger: c.Logger}
	}
	return r
}

func (c *Container) Seed(ctx context.Context) error {
	r := seeder.Runner{Seeders: seeder.Defaults(c.Config.Admin), Logger: c.Logger}
	if err := r.Run(ctx, c.DB); err != nil {
		return err
	}

	// The skill catalogue is cached; make newly seeded skills visible.
	rc := c.Cache
	if rc == nil {
		rc = cache.NewRedis(c.Config.Redis, c.Logger)
		defer func() { _ = rc.Close() }()
	}
	if err := rc.InvalidateSkills(ctx); err != nil {
		c.Logger.Printf("[Seeder] skill cache invalidation failed err=%v", err)
	}
	return nil
}

// Build creates the infrastructure clients, repositories and usecases and
// starts the websocket hub.
func (c *Container) Build(ctx context.Context) error {
	cfg := c.Config

	if cfg.Database.RunMigrations {
		if err := c.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.Database.RunSeeders {
		if err := c.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	store, err := storage.New(ctx, cfg.Storage, c.Logger)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	c.Store = store
	c.Cache = cache.NewRedis(cfg.Redis, c.Logger)
	c.Publisher = messaging.New(cfg.Messaging.RabbitMQURL, cfg.Messaging.Exchange, c.Logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, jwt.WithIssuer(cfg.App.AppName))

	c.Hub = ws.NewHub(c.Logger)
	hubCtx, stop := context.WithCancel(context.Background())
	c.stopHub = stop
	go c.Hub.Run(hubCtx)

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if pool, ok := c.DB.(*dbpostgres.Pool); ok {
		c.Registry.MustRegister(dbpostgres.NewPoolCollector(pool))
	}

	c.Repos = Repositories{
		Users:      postgres.NewUserRepository(c.DB),
		Jobs:       repository.NewPostgresJobRepository(c.DB),
		JobSkills:  repository.NewPostgresJobSkillRepository(c.DB),
		Skills:     repository.NewPostgresSkillRepository(c.DB),
		UserSkills: repository.NewPostgresUserSkillRepository(c.DB),
		Companies:  repository.NewPostgresCompanyRepository(c.DB),
		Apps:       repository.NewPostgresApplicationRepository(c.DB),
		SavedJobs:  repository.NewPostgresSavedJobRepository(c.DB),
		AdminLogs:  repository.NewPostgresAdminLogRepository(c.DB),
		Analytics:  repository.NewPostgresAnalyticsRepository(c.DB),
	}
	c.Usecases = newUsecases(c)
	return nil
}

func newUsecases(c *Container) Usecases {
	r := c.Repos
	cfg := c.Config
	return Usecases{
		Auth:            usecase.NewAuthUsecase(r.Users, r.Companies, c.JWT, c.Logger),
		Jobs:            usecase.NewJobUsecase(r.Jobs, r.JobSkills, r.Skills, r.Companies, c.Cache, c.Hub, c.Publisher, c.Logger),
		Recommendations: usecase.NewJobRecommendationUsecase(r.Jobs, r.JobSkills, r.UserSkills, c.Logger),
		Applications:    usecase.NewApplicationUsecase(r.Apps, r.Jobs, r.UserSkills, c.Publisher, c.Logger),
		Users:           usecase.NewUserUsecase(r.Users, r.Companies, c.Store, cfg.Storage, c.Logger),
		Skills:          usecase.NewSkillUsecase(r.Skills, c.Cache, c.Logger),
		UserSkills:      usecase.NewUserSkillUsecase(r.UserSkills, r.Skills, r.Users, c.Logger),
		SavedJobs:       usecase.NewSavedJobUsecase(r.SavedJobs, r.Jobs),
		Companies:       usecase.NewCompanyUsecase(r.Companies, c.Store, cfg.Storage, c.Logger),
		Admin:           usecase.NewAdminUsecase(r.Users, r.Jobs, r.AdminLogs, r.Analytics, c.Cache, c.Hub, c.Publisher, c.Logger),
		Health:          usecase.NewHealthUsecase(c.DB, c.Cache, c.Hub),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.stopHub != nil {
		c.stopHub()
	}

	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
