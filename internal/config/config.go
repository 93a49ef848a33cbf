package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Messaging MessagingConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	MigrationsDir string
	RunSeeders    bool
}

type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type StorageConfig struct {
	Driver      string
	UploadDir   string
	MaxFileSize int64
	MaxLogoSize int64
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

type MessagingConfig struct {
	RabbitMQURL string
	Exchange    string
}

type AdminConfig struct {
	Email    string
	Password string
}

type RateLimitConfig struct {
	LoginMax    int
	LoginWindow time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		CORSOrigins: splitList(opt("CORS_ORIGINS")),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     req("DB_HOST"),
		DBPort:     req("DB_PORT"),
		DBName:     req("DB_NAME"),
		DBUser:     req("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  orDefault(opt("DB_SSL_MODE"), "disable"),

		ConnectTimeout:        parseDuration(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:          int32(parseInt(opt("DB_POOL_MAX_CONNS"), 10)),
		PoolMinConns:          int32(parseInt(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime:   parseDuration(opt("DB_POOL_MAX_CONN_LIFETIME"), time.Hour),
		PoolMaxConnIdleTime:   parseDuration(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 30*time.Minute),
		PoolHealthCheckPeriod: parseDuration(opt("DB_POOL_HEALTH_CHECK_PERIOD"), time.Minute),

		RunMigrations: parseBool(opt("RUN_MIGRATIONS"), false),
		MigrationsDir: opt("MIGRATIONS_DIR"),
		RunSeeders:    parseBool(opt("RUN_SEEDERS"), false),
	}

	cfg.JWT = JWTConfig{
		Secret:    req("JWT_SECRET"),
		ExpiresIn: parseDuration(opt("JWT_EXPIRES_IN"), 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     orDefault(opt("REDIS_HOST"), "localhost"),
		Port:     orDefault(opt("REDIS_PORT"), "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      time.Duration(parseInt(opt("REDIS_TTL"), 600)) * time.Second,
	}

	cfg.Storage = StorageConfig{
		Driver:      strings.ToLower(orDefault(opt("STORAGE_DRIVER"), "local")),
		UploadDir:   orDefault(opt("UPLOAD_DIR"), "uploads"),
		MaxFileSize: int64(parseInt(opt("MAX_FILE_SIZE"), 5*1024*1024)),
		MaxLogoSize: int64(parseInt(opt("MAX_LOGO_SIZE"), 2*1024*1024)),
		S3Bucket:    opt("S3_BUCKET"),
		S3Region:    orDefault(opt("S3_REGION"), "auto"),
		S3Endpoint:  opt("S3_ENDPOINT"),
		S3AccessKey: opt("S3_ACCESS_KEY"),
		S3SecretKey: opt("S3_SECRET_KEY"),
		S3PublicURL: opt("S3_PUBLIC_URL"),
	}
	if cfg.Storage.Driver == "s3" {
		req("S3_BUCKET")
		req("S3_ACCESS_KEY")
		req("S3_SECRET_KEY")
	}

	cfg.Messaging = MessagingConfig{
		RabbitMQURL: opt("RABBITMQ_URL"),
		Exchange:    orDefault(opt("RABBITMQ_EXCHANGE"), "skillhire.events"),
	}

	cfg.Admin = AdminConfig{
		Email:    orDefault(opt("ADMIN_EMAIL"), "admin@skillhire.com"),
		Password: orDefault(opt("ADMIN_PASSWORD"), "admin123"),
	}

	cfg.RateLimit = RateLimitConfig{
		LoginMax:    parseInt(opt("LOGIN_RATE_LIMIT_MAX"), 10),
		LoginWindow: parseDuration(opt("LOGIN_RATE_LIMIT_WINDOW"), time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func parseBool(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// parseDuration accepts Go durations ("15m") or the "7d" day shorthand.
func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	if strings.HasSuffix(raw, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil || n <= 0 {
			return def
		}
		return time.Duration(n) * 24 * time.Hour
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
