package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DefaultAPIBaseURL = "https://nt-shopping-list.onrender.com/api"

// Store backends understood by the client.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds runtime settings for the tripcart CLI.
//
// Units: RequestTimeout is a time.Duration; zero disables the default
// deadline and leaves cancellation to the caller's context. An empty
// MetricsAddr keeps the /metrics listener off.
type Config struct {
	APIBaseURL     string        `env:"API_URL, overwrite" validate:"required,url"`
	StoreBackend   string        `env:"STORE, overwrite" validate:"oneof=sqlite redis memory"`
	StoreDSN       string        `env:"STORE_DSN, overwrite" validate:"required_if=StoreBackend sqlite"`
	RedisAddr      string        `env:"REDIS_ADDR, overwrite" validate:"required_if=StoreBackend redis"`
	RedisDB        int           `env:"REDIS_DB, overwrite" validate:"gte=0"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, overwrite" validate:"gte=0"`
	LogLevel       string        `env:"LOG_LEVEL, overwrite"`
	LogPretty      bool          `env:"LOG_PRETTY, overwrite"`
	MetricsAddr    string        `env:"METRICS_ADDR, overwrite"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.StoreBackend = StoreSQLite
	c.StoreDSN = "tripcart.db"
	c.RedisAddr = "localhost:6379"
	c.RedisDB = 0
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogPretty = true
}

// Validate reports the first configuration problems found, one per field.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " is required"
	case "url":
		return fe.Field() + " must be an absolute URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, an optional JSON file and command-line flags, in that order.
func LoadConfig(ctx context.Context) *Config {
	return load(ctx, os.Args[1:], nil)
}

func load(ctx context.Context, args []string, env map[string]string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(ctx, cfg, env)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg
}
