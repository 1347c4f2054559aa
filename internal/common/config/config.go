// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Matrix  MatrixConfig  `mapstructure:"matrix"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	ListenAddress   string `mapstructure:"listen_address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// MatrixConfig holds credentials and endpoints for the Matrix Booking API.
type MatrixConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	Username          string `mapstructure:"username"`
	Password          string `mapstructure:"password"`
	Timeout           int    `mapstructure:"timeout"` // milliseconds
	PreferredLocation string `mapstructure:"preferred_location"`
}

// RequestTimeout returns the per-call deadline for Matrix API requests.
func (m MatrixConfig) RequestTimeout() time.Duration {
	if m.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(m.Timeout) * time.Millisecond
}

// CacheConfig holds the optional Redis cache settings for slow-changing
// catalog data (booking categories, location kinds).
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

func (c CacheConfig) EntryTTL() time.Duration {
	if c.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TTL) * time.Second
}

// SearchConfig holds tuning for the facility search engine.
type SearchConfig struct {
	DefaultMaxResults int `mapstructure:"default_max_results"`
	MaxMaxResults     int `mapstructure:"max_max_results"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func validateConfig(cfg *Config) error {
	if cfg.Matrix.BaseURL == "" {
		return fmt.Errorf("matrix.base_url is required")
	}
	if cfg.Matrix.Username == "" || cfg.Matrix.Password == "" {
		return fmt.Errorf("matrix credentials are required (MATRIX_USERNAME / MATRIX_PASSWORD)")
	}
	if cfg.Search.DefaultMaxResults > cfg.Search.MaxMaxResults {
		return fmt.Errorf("search.default_max_results exceeds search.max_max_results")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "matrix-booking-server"
	}
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = ":8080"
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Matrix.BaseURL == "" {
		cfg.Matrix.BaseURL = "https://app.matrixbooking.com/api/v1"
	}
	if cfg.Matrix.Timeout <= 0 {
		cfg.Matrix.Timeout = 30000
	}
	if cfg.Search.DefaultMaxResults <= 0 {
		cfg.Search.DefaultMaxResults = 10
	}
	if cfg.Search.MaxMaxResults <= 0 {
		cfg.Search.MaxMaxResults = 50
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
