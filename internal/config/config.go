package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Database types accepted in DATABASE_TYPE.
const (
	DatabaseMemory   = "memory"
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

// Config holds the settings shared by the app shell and the dev backend.
type Config struct {
	AppPort            string
	APIURL             string
	APITimeout         time.Duration
	EmailCheckDebounce time.Duration
	SessionIdleTimeout time.Duration
	DevBackendPort     string
	DatabaseType       string
	DatabaseDSN        string
	// OrderEventsURL is the RabbitMQ URL the dev backend publishes order
	// events to. Empty disables publishing.
	OrderEventsURL   string
	OrderEventsQueue string
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom reads configuration through v. Tests pass their own instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("API_URL", "http://localhost:3000")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("EMAIL_CHECK_DEBOUNCE", "300ms")
	v.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	v.SetDefault("DEV_BACKEND_PORT", ":3000")
	v.SetDefault("DATABASE_TYPE", DatabaseMemory)
	v.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	v.SetDefault("ORDER_EVENTS_URL", "")
	v.SetDefault("ORDER_EVENTS_QUEUE", "orders.created")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:            v.GetString("APP_PORT"),
		APIURL:             strings.TrimRight(v.GetString("API_URL"), "/"),
		APITimeout:         v.GetDuration("API_TIMEOUT"),
		EmailCheckDebounce: v.GetDuration("EMAIL_CHECK_DEBOUNCE"),
		SessionIdleTimeout: v.GetDuration("SESSION_IDLE_TIMEOUT"),
		DevBackendPort:     v.GetString("DEV_BACKEND_PORT"),
		DatabaseType:       strings.ToLower(v.GetString("DATABASE_TYPE")),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		OrderEventsURL:     v.GetString("ORDER_EVENTS_URL"),
		OrderEventsQueue:   v.GetString("ORDER_EVENTS_QUEUE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.AppPort == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if c.EmailCheckDebounce < 0 {
		return fmt.Errorf("EMAIL_CHECK_DEBOUNCE must not be negative")
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive")
	}

	switch c.DatabaseType {
	case DatabaseMemory, DatabaseSQLite, DatabasePostgres:
	default:
		return fmt.Errorf("invalid DATABASE_TYPE: %s (must be memory, sqlite or postgres)", c.DatabaseType)
	}
	if c.DatabaseType != DatabaseMemory && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required for %s", c.DatabaseType)
	}
	return nil
}
