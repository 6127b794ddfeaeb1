package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix    = "WASTE_"
	configEnvVar = "CONFIG_PATH"
)

// Loader merges defaults, an optional YAML file and WASTE_* environment
// variables, in increasing priority.
type Loader struct {
	k           *koanf.Koanf
	configPaths []string
	envPrefix   string
}

type LoaderOption func(*Loader)

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k: koanf.New("."),
		configPaths: []string{
			"config.yaml",
			"config/config.yaml",
		},
		envPrefix: envPrefix,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func WithConfigPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.configPaths = paths
	}
}

func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load config: defaults: %w", err)
	}

	// The file is optional.
	if path, ok := l.findConfigFile(); ok {
		if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config: file %q: %w", path, err)
		}
	} else {
		slog.Debug("no config file found, using defaults and environment", "paths", l.configPaths)
	}

	if err := l.loadEnv(); err != nil {
		return nil, fmt.Errorf("load config: env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"http.port":                8080,
		"http.read_header_timeout": 5 * time.Second,
		"http.read_timeout":        10 * time.Second,
		"http.write_timeout":       30 * time.Second,
		"http.idle_timeout":        60 * time.Second,
		"http.shutdown_timeout":    10 * time.Second,
		"http.rate_limit":          20.0,
		"http.burst":               40,

		"log.level":       "info",
		"log.format":      "json",
		"log.output":      "stdout",
		"log.file_path":   "logs/waste-route.log",
		"log.max_size":    100,
		"log.max_backups": 3,
		"log.max_age":     7,
		"log.compress":    true,

		"dataset.path": "data/seeds/belgaum.yaml",

		"ledger.backend":      BackendMemory,
		"ledger.sqlite_path":  "data/ledger.db",
		"ledger.redis_prefix": "waste:ledger",
		"ledger.export_path":  "data/exports/ledger.txt",

		"metrics.enabled":   true,
		"metrics.namespace": "waste_route",
	}
}

func (l *Loader) findConfigFile() (string, bool) {
	if p := os.Getenv(configEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}

	for _, p := range l.configPaths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			return abs, true
		}
	}

	return "", false
}

func (l *Loader) loadEnv() error {
	return l.k.Load(env.ProviderWithValue(l.envPrefix, ".", func(envKey, value string) (string, any) {
		key := strings.ToLower(strings.TrimPrefix(envKey, l.envPrefix))

		if mapped, ok := envKeyMappings[key]; ok {
			return mapped, value
		}
		return strings.ReplaceAll(key, "_", "."), value
	}), nil)
}

// envKeyMappings covers keys whose names contain underscores.
var envKeyMappings = map[string]string{
	"http_read_header_timeout": "http.read_header_timeout",
	"http_read_timeout":        "http.read_timeout",
	"http_write_timeout":       "http.write_timeout",
	"http_idle_timeout":        "http.idle_timeout",
	"http_shutdown_timeout":    "http.shutdown_timeout",
	"http_rate_limit":          "http.rate_limit",

	"log_file_path":   "log.file_path",
	"log_max_size":    "log.max_size",
	"log_max_backups": "log.max_backups",
	"log_max_age":     "log.max_age",

	"ledger_sqlite_path":    "ledger.sqlite_path",
	"ledger_database_url":   "ledger.database_url",
	"ledger_redis_addr":     "ledger.redis_addr",
	"ledger_redis_password": "ledger.redis_password",
	"ledger_redis_db":       "ledger.redis_db",
	"ledger_redis_prefix":   "ledger.redis_prefix",
	"ledger_export_path":    "ledger.export_path",
}
