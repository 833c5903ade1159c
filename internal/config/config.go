package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Store drivers accepted by the dev server.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Client holds the configuration for record service consumers.
// Environment variables are parsed from the RECORDS_ prefix.
type Client struct {
	BaseURL     string        `envconfig:"BASE_URL" default:"http://localhost:5000"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	Debug       bool          `envconfig:"DEBUG" default:"false"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Server holds the configuration for the local record server.
// Environment variables are parsed from the RECORDS_DEVSERVER_ prefix.
type Server struct {
	HTTPPort int    `envconfig:"HTTP_PORT" default:"5000"`
	Store    string `envconfig:"STORE" default:"memory"`

	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/records.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// NewClient creates a Client config from RECORDS_* environment variables.
// Example: RECORDS_BASE_URL, RECORDS_HTTP_TIMEOUT
func NewClient() (*Client, error) {
	var cfg Client
	if err := envconfig.Process("RECORDS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("RECORDS_HTTP_TIMEOUT must be > 0, got %s", cfg.HTTPTimeout)
	}
	return &cfg, nil
}

// NewServer creates a Server config from RECORDS_DEVSERVER_* environment variables.
// Example: RECORDS_DEVSERVER_STORE=sqlite, RECORDS_DEVSERVER_HTTP_PORT=5001
func NewServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("RECORDS_DEVSERVER", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("store", cfg.Store).
		Int("port", cfg.HTTPPort).
		Str("sqlite_path", cfg.SQLitePath).
		Str("postgres_dsn_present", func() string {
			if cfg.PostgresDSN != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate checks the store driver and its required settings.
func (c *Server) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for store %q", c.Store)
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for store %q", c.Store)
		}
	default:
		return fmt.Errorf("unsupported STORE: %s", c.Store)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	return nil
}

// GetHTTPAddr returns the HTTP server address
func (c *Server) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
