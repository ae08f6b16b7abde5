package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the services.
type Config struct {
	App       AppConfig
	SQLite    SQLiteConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Session   SessionConfig
	Estimator EstimatorConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	RequestTimeoutSeconds int
	SeedDemoUsers         bool
}

// SQLiteConfig holds database file settings.
type SQLiteConfig struct {
	Path          string
	RunMigrations bool
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis
// and the session middleware falls back to in-process storage.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters shared by both services.
type AuthConfig struct {
	JWTSecret       string
	TokenTTLSeconds int
}

// SessionConfig controls the cookie session middleware.
type SessionConfig struct {
	CookieName     string
	TTLMinutes     int
	CookieSecure   bool
	CookieDomain   string
	CookieSameSite string
}

// EstimatorConfig holds settings for the estimation micro-service.
type EstimatorConfig struct {
	Host string
	Port string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-desk"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3001"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			SeedDemoUsers:         getEnvAsBool("SEED_DEMO_USERS", false),
		},
		SQLite: SQLiteConfig{
			Path:          getEnv("SQLITE_PATH", "ticket.db"),
			RunMigrations: getEnvAsBool("SQLITE_RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("AUTH_JWT_SECRET", "dev-secret"),
			TokenTTLSeconds: getEnvAsInt("AUTH_TOKEN_TTL_SECONDS", 60),
		},
		Session: SessionConfig{
			CookieName:     getEnv("SESSION_COOKIE_NAME", "ticket_session"),
			TTLMinutes:     getEnvAsInt("SESSION_TTL_MINUTES", 720),
			CookieSecure:   getEnvAsBool("SESSION_COOKIE_SECURE", false),
			CookieDomain:   getEnv("SESSION_COOKIE_DOMAIN", ""),
			CookieSameSite: getEnv("SESSION_COOKIE_SAMESITE", "Lax"),
		},
		Estimator: EstimatorConfig{
			Host: getEnv("ESTIMATOR_HOST", "0.0.0.0"),
			Port: getEnv("ESTIMATOR_PORT", "3002"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address for the main API.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Addr returns the HTTP bind address for the estimator.
func (e EstimatorConfig) Addr() string {
	return fmt.Sprintf("%s:%s", e.Host, e.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the estimation token lifetime.
func (c AuthConfig) TokenTTL() time.Duration {
	if c.TokenTTLSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TokenTTLSeconds) * time.Second
}

// TTL returns the session lifetime.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
