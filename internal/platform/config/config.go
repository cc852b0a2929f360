// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries environment-driven settings shared by the API, worker and CLI.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	PostgresDSN            string        `env:"POSTGRES_DSN"`
	PostgresConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" envDefault:"5s"`

	// LocalStorePath selects a SQLite file for the fallback backend; empty keeps it in memory.
	LocalStorePath string `env:"LOCAL_STORE_PATH"`
	LocalStoreKey  string `env:"LOCAL_STORE_KEY" envDefault:"ydea_voucher_requests"`

	CatalogPath string `env:"CATALOG_PATH"`
	StaffPath   string `env:"STAFF_PATH"`

	DashboardRefreshSeconds int `env:"DASHBOARD_REFRESH_SECONDS" envDefault:"30"`

	Temporal  TemporalConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
}

type TelemetryConfig struct {
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

type TemporalConfig struct {
	Address   string `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	Namespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	Disabled  bool   `env:"TEMPORAL_DISABLED" envDefault:"false"`
}

type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_VOUCHER_TOPIC" envDefault:"voucher-requests"`
}

// Enabled reports whether at least one broker is configured.
func (k KafkaConfig) Enabled() bool {
	for _, b := range k.Brokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}

// Load reads envPath (missing file is fine) and then the process environment.
// Variables already set in the environment win over the file.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks basic constraints.
func (c Config) Validate() error {
	if c.DashboardRefreshSeconds <= 0 {
		return fmt.Errorf("DASHBOARD_REFRESH_SECONDS must be a positive integer")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.Kafka.Enabled() && strings.TrimSpace(c.Kafka.Topic) == "" {
		return fmt.Errorf("KAFKA_VOUCHER_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
