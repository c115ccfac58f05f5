package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Session backends
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Config holds all client configuration
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	OTEL    OTELConfig
}

// AppConfig holds general application settings
type AppConfig struct {
	Name string `env:"APP_NAME" envDefault:"healthcare-client"`
	Env  string `env:"APP_ENV" envDefault:"development"`
}

// APIConfig holds backend connection settings
type APIConfig struct {
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:9090"`
	// Timeout of zero leaves requests unbounded; callers cancel through the context.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"0s"`
}

// SessionConfig selects where the bearer token is persisted
type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND" envDefault:"file"`
	File    string `env:"SESSION_FILE"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host      string `env:"REDIS_HOST" envDefault:"localhost"`
	Port      int    `env:"REDIS_PORT" envDefault:"6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"healthcare:"`
	// ConnectAttempts bounds the pings made before giving up on startup
	ConnectAttempts int `env:"REDIS_CONNECT_ATTEMPTS" envDefault:"3"`
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"healthcare-client"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION" envDefault:"1.0.0"`
	Endpoint       string `env:"OTEL_ENDPOINT"`
	Enabled        bool   `env:"OTEL_ENABLED" envDefault:"false"`
}

// LoadDotEnv loads variables from the given .env files (".env" when none are
// given). Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if _, err := url.ParseRequestURI(cfg.API.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid API_BASE_URL %q: %w", cfg.API.BaseURL, err)
	}

	switch cfg.Session.Backend {
	case SessionBackendFile:
		if cfg.Session.File == "" {
			cfg.Session.File = defaultSessionFile()
		}
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}

	return cfg, nil
}

// ResourceURL returns the base URL of a REST resource, e.g. "users"
func (c *APIConfig) ResourceURL(resource string) string {
	return c.BaseURL + "/" + strings.Trim(resource, "/")
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "healthcare", "session.json")
}
