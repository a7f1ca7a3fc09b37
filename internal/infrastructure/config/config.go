package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds settings for the admin console.
type Config struct {
	// APIBaseURL is the root of the remote REST service the console manages.
	APIBaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	APITimeout time.Duration `env:"API_TIMEOUT,  default=10s"`

	LogLevel string `env:"LOG_LEVEL, default=info"`
	// LogFile is where logs go; the TUI owns the terminal, so logging to
	// stdout would corrupt the display. Empty discards logs entirely.
	LogFile string `env:"LOG_FILE"`
}

// MockAPIConfig holds settings for the development backend.
type MockAPIConfig struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

// Load reads console configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadMockAPI reads development-backend configuration from environment variables.
func LoadMockAPI() (*MockAPIConfig, error) {
	var cfg MockAPIConfig
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
