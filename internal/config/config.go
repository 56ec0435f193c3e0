package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend names accepted by BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Session store names accepted by SESSION_STORE.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port      int    `envconfig:"PORT" default:"8080"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
	Version   string `envconfig:"VERSION" default:"dev"`

	Backend     string `envconfig:"BACKEND" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`

	BcryptCost   int           `envconfig:"BCRYPT_COST" default:"12"`
	SessionStore string        `envconfig:"SESSION_STORE" default:"memory"`
	RedisURL     string        `envconfig:"REDIS_URL" default:""`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"12h"`

	ToastDuration       time.Duration `envconfig:"TOAST_DURATION" default:"3s"`
	SQLConsoleEnabled   bool          `envconfig:"SQL_CONSOLE_ENABLED" default:"true"`
	SQLStatementTimeout time.Duration `envconfig:"SQL_STATEMENT_TIMEOUT" default:"30s"`
	PromoSweepInterval  time.Duration `envconfig:"PROMO_SWEEP_INTERVAL" default:"1h"`

	WorkspaceSweepInterval time.Duration `envconfig:"WORKSPACE_SWEEP_INTERVAL" default:"10m"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when BACKEND=%s", BackendPostgres)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.Backend)
	}

	switch c.SessionStore {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE=%s", SessionStoreRedis)
		}
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, c.SessionStore)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.PromoSweepInterval <= 0 {
		return fmt.Errorf("PROMO_SWEEP_INTERVAL must be positive")
	}
	if c.WorkspaceSweepInterval <= 0 {
		return fmt.Errorf("WORKSPACE_SWEEP_INTERVAL must be positive")
	}
	return nil
}
