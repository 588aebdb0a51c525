package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds the full server configuration, loaded from the environment
type Server struct {
	Host            string        `env:"HOST" envDefault:""`
	Port            int           `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`

	// ChatWebhookURL enables outbound chat notifications when set.
	// Delivery itself lives behind the notify.Sender boundary.
	ChatWebhookURL string `env:"CHAT_WEBHOOK_URL" envDefault:""`
}

// Load parses server configuration from environment variables
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
