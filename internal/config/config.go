// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the service configuration.
type Config struct {
	Addr    string `env:"HANDOVER_ADDR" envDefault:":8080"`
	DBPath  string `env:"HANDOVER_DB" envDefault:"handover.sqlite3"`
	LogPath string `env:"HANDOVER_LOG"`

	Advisory Advisory `envPrefix:"ADVISORY_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Kafka    Kafka    `envPrefix:"KAFKA_"`

	// OtelEndpoint is the OTLP/HTTP collector host:port. Tracing is
	// disabled when empty.
	OtelEndpoint string `env:"OTEL_ENDPOINT"`
	OtelInsecure bool   `env:"OTEL_INSECURE"`
}

// Advisory configures the text generation service.
type Advisory struct {
	APIKey      string        `env:"API_KEY"`
	BaseURL     string        `env:"BASE_URL"`
	Model       string        `env:"MODEL"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"20s"`
	InsightsTTL time.Duration `env:"INSIGHTS_TTL" envDefault:"10m"`
}

// Redis configures the optional insights cache.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Kafka configures the optional handover event publisher.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"handover.completed"`
}

// Load reads the given dotenv files and then parses the environment. Empty
// names and missing files are skipped. Variables already set take
// precedence over files.
func Load(dotenvFiles ...string) (*Config, error) {
	for _, f := range dotenvFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
