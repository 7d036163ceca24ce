// Package config loads the application configuration. Precedence, lowest to
// highest: built-in defaults, the YAML file, a local .env file, process
// environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roamdine/platform/internal/app/providers"
)

// DefaultPath is consulted when no explicit config file is given.
const DefaultPath = "config/platform.yaml"

type Config struct {
	Environment string `yaml:"environment" env:"PLATFORM_ENV"`

	Server struct {
		Addr            string        `yaml:"addr" env:"SERVER_ADDR"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		RequestsPerSec  float64       `yaml:"requests_per_sec" env:"SERVER_REQUESTS_PER_SEC"`
	} `yaml:"server"`

	Database struct {
		DSN             string        `yaml:"dsn" env:"DATABASE_DSN"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`

	RateLimit struct {
		Limit  int           `yaml:"limit" env:"RATELIMIT_LIMIT"`
		Window time.Duration `yaml:"window" env:"RATELIMIT_WINDOW"`
	} `yaml:"ratelimit"`

	Providers providers.Config `yaml:"providers"`

	Auth struct {
		Secret     string        `yaml:"secret" env:"AUTH_SECRET"`
		SessionTTL time.Duration `yaml:"session_ttl" env:"AUTH_SESSION_TTL"`
	} `yaml:"auth"`

	Audit struct {
		Capacity int    `yaml:"capacity" env:"AUDIT_CAPACITY"`
		FilePath string `yaml:"file_path" env:"AUDIT_FILE_PATH"`
	} `yaml:"audit"`

	Orders struct {
		StaleAfter time.Duration `yaml:"stale_after" env:"ORDERS_STALE_AFTER"`
	} `yaml:"orders"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.Environment = "development"
	cfg.Server.Addr = ":8080"
	cfg.Server.ReadTimeout = 15 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Server.RequestsPerSec = 50
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.RateLimit.Limit = 100
	cfg.RateLimit.Window = time.Minute
	cfg.Auth.SessionTTL = 24 * time.Hour
	cfg.Audit.Capacity = 1024
	cfg.Orders.StaleAfter = 15 * time.Minute
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	return cfg
}

// Load builds the configuration from the given YAML path (empty means
// DefaultPath, which is optional) plus environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Optional default file.
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	// A local .env file seeds the environment without clobbering what the
	// process already has.
	_ = godotenv.Load()

	if err := envdecode.Decode(&cfg); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Production() && strings.TrimSpace(c.Auth.Secret) == "" {
		return fmt.Errorf("auth secret is required in production")
	}
	if c.RateLimit.Limit < 0 {
		return fmt.Errorf("ratelimit limit must not be negative")
	}
	return nil
}

// Production reports whether the environment is production.
func (c Config) Production() bool {
	return strings.EqualFold(c.Environment, "production")
}
