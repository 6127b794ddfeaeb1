package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"waste-route-service/internal/platform/logging"
)

// Ledger persistence backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	HTTP    HTTPConfig    `koanf:"http"`
	Log     LogConfig     `koanf:"log"`
	Dataset DatasetConfig `koanf:"dataset"`
	Ledger  LedgerConfig  `koanf:"ledger"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type HTTPConfig struct {
	Port              int           `koanf:"port"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	// Requests per second per client IP; 0 disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
	Burst     int     `koanf:"burst"`
}

type LogConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	Output     string `koanf:"output"`
	FilePath   string `koanf:"file_path"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// Logging converts the section into a logging.Config.
func (l LogConfig) Logging() logging.Config {
	return logging.Config{
		Level:      l.Level,
		Format:     l.Format,
		Output:     l.Output,
		FilePath:   l.FilePath,
		MaxSize:    l.MaxSize,
		MaxBackups: l.MaxBackups,
		MaxAge:     l.MaxAge,
		Compress:   l.Compress,
	}
}

type DatasetConfig struct {
	Path string `koanf:"path"`
}

type LedgerConfig struct {
	Backend       string `koanf:"backend"`
	SQLitePath    string `koanf:"sqlite_path"`
	DatabaseURL   string `koanf:"database_url"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	RedisPrefix   string `koanf:"redis_prefix"`
	ExportPath    string `koanf:"export_path"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.HTTP.RateLimit < 0 {
		errs = append(errs, fmt.Sprintf("http.rate_limit must be non-negative, got %g", c.HTTP.RateLimit))
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.Burst <= 0 {
		errs = append(errs, fmt.Sprintf("http.burst must be positive when rate limiting, got %d", c.HTTP.Burst))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if strings.TrimSpace(c.Dataset.Path) == "" {
		errs = append(errs, "dataset.path is required")
	}

	switch c.Ledger.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Ledger.SQLitePath == "" {
			errs = append(errs, "ledger.sqlite_path is required for the sqlite backend")
		}
	case BackendPostgres:
		if c.Ledger.DatabaseURL == "" {
			errs = append(errs, "ledger.database_url is required for the postgres backend")
		}
	case BackendRedis:
		if c.Ledger.RedisAddr == "" {
			errs = append(errs, "ledger.redis_addr is required for the redis backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("ledger.backend must be one of: memory, sqlite, postgres, redis, got %q", c.Ledger.Backend))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

// Get returns the environment variable key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
