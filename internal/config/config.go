package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/timezone"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	ServerPort string        `envconfig:"SERVER_PORT" default:"8080"`
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	NavDelay   time.Duration `envconfig:"NAV_DELAY" default:"2s"`

	DBUrl string `envconfig:"DATABASE_URL" masked:"true"`

	StateStore    string        `envconfig:"STATE_STORE" default:"memory"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" masked:"true"`
	StateTTL      time.Duration `envconfig:"STATE_TTL" default:"30m"`

	CSRFKey       string `envconfig:"CSRF_KEY" masked:"true"`
	SecureCookies bool   `envconfig:"SECURE_COOKIES" default:"false"`

	Timezone        string `envconfig:"TIMEZONE" default:"America/Bogota"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LoginRatePerMin int    `envconfig:"LOGIN_RATE_PER_MIN" default:"10"`
}

// Load reads an optional .env file and then the environment. Variables
// already set in the environment win over the file.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit .env path; a missing file is not an
// error.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StateStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("STATE_STORE must be %q or %q, got %q", StoreMemory, StoreRedis, c.StateStore)
	}
	if c.CSRFKey != "" && len(c.CSRFKey) != 32 {
		return fmt.Errorf("CSRF_KEY must be 32 bytes, got %d", len(c.CSRFKey))
	}
	if c.LoginRatePerMin <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// Location resolves Timezone, falling back to the default zone.
func (c *Config) Location() *time.Location {
	return timezone.Location(c.Timezone)
}
