package app

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production test"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8501" validate:"required"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s" validate:"gt=0"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s" validate:"gt=0"`
	AppTimezone       string        `envconfig:"APP_TIMEZONE" default:"America/Guatemala" validate:"required"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty" validate:"oneof=pretty json"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379" validate:"required"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h" validate:"gt=0"`
	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"trackinggt_session" validate:"required"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	GlobalRateLimit int `envconfig:"RATE_LIMIT" default:"120" validate:"gte=0"`
	LoginRateLimit  int `envconfig:"LOGIN_RATE_LIMIT" default:"10" validate:"gte=0"`

	LogisticsAsync    bool   `envconfig:"LOGISTICS_ASYNC" default:"false"`
	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"2" validate:"gte=1"`
	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR" default:":9101"`
	WorkerSyncCron    string `envconfig:"WORKER_SYNC_CRON" default:""`

	location *time.Location
}

var configValidator = validator.New()

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, errors.New("session secret must be provided")
	}
	if strings.TrimSpace(cfg.CSRFSecret) == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	if err := configValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	loc, err := time.LoadLocation(cfg.AppTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.AppTimezone, err)
	}
	cfg.location = loc
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Location is the zone that defines "today" for the dashboard window.
func (c *Config) Location() *time.Location {
	if c == nil || c.location == nil {
		return time.UTC
	}
	return c.location
}
