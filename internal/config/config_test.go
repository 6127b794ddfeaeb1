package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolatedLoader(t *testing.T, paths ...string) *Loader {
	t.Helper()
	t.Setenv(configEnvVar, "")
	if len(paths) == 0 {
		paths = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	}
	return NewLoader(WithConfigPaths(paths...), WithEnvPrefix("WASTE_TEST_"))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := isolatedLoader(t).Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadHeaderTimeout)
	assert.Equal(t, 20.0, cfg.HTTP.RateLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "data/seeds/belgaum.yaml", cfg.Dataset.Path)
	assert.Equal(t, BackendMemory, cfg.Ledger.Backend)
	assert.Equal(t, "data/exports/ledger.txt", cfg.Ledger.ExportPath)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
http:
  port: 9000
  write_timeout: 45s
log:
  level: debug
ledger:
  backend: sqlite
  sqlite_path: /tmp/ledger.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := isolatedLoader(t, path).Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 45*time.Second, cfg.HTTP.WriteTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, BackendSQLite, cfg.Ledger.Backend)
	assert.Equal(t, "/tmp/ledger.db", cfg.Ledger.SQLitePath)
	// untouched keys keep their defaults
	assert.Equal(t, 40, cfg.HTTP.Burst)
}

func TestLoadConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 7070\n"), 0o644))

	l := NewLoader(WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")), WithEnvPrefix("WASTE_TEST_"))
	t.Setenv(configEnvVar, path)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTP.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: 9000\n"), 0o644))

	l := isolatedLoader(t, path)
	t.Setenv("WASTE_TEST_HTTP_PORT", "9100")
	t.Setenv("WASTE_TEST_HTTP_RATE_LIMIT", "2.5")
	t.Setenv("WASTE_TEST_LEDGER_BACKEND", "redis")
	t.Setenv("WASTE_TEST_LEDGER_REDIS_ADDR", "localhost:6379")
	t.Setenv("WASTE_TEST_METRICS_ENABLED", "false")

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTP.Port)
	assert.Equal(t, 2.5, cfg.HTTP.RateLimit)
	assert.Equal(t, BackendRedis, cfg.Ledger.Backend)
	assert.Equal(t, "localhost:6379", cfg.Ledger.RedisAddr)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unclosed\n"), 0o644))

	_, err := isolatedLoader(t, path).Load()
	assert.Error(t, err)
}

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080, RateLimit: 10, Burst: 20},
		Log:     LogConfig{Level: "info"},
		Dataset: DatasetConfig{Path: "data/seeds/belgaum.yaml"},
		Ledger:  LedgerConfig{Backend: BackendMemory},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.HTTP.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.HTTP.Port = 70000 }, wantErr: true},
		{name: "negative rate", mutate: func(c *Config) { c.HTTP.RateLimit = -1 }, wantErr: true},
		{name: "no burst", mutate: func(c *Config) { c.HTTP.Burst = 0 }, wantErr: true},
		{name: "rate limiting off", mutate: func(c *Config) { c.HTTP.RateLimit, c.HTTP.Burst = 0, 0 }},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "no dataset", mutate: func(c *Config) { c.Dataset.Path = " " }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.Ledger.Backend = "mongo" }, wantErr: true},
		{name: "sqlite without path", mutate: func(c *Config) { c.Ledger.Backend = BackendSQLite }, wantErr: true},
		{name: "postgres without url", mutate: func(c *Config) { c.Ledger.Backend = BackendPostgres }, wantErr: true},
		{name: "redis without addr", mutate: func(c *Config) { c.Ledger.Backend = BackendRedis }, wantErr: true},
		{
			name: "postgres with url",
			mutate: func(c *Config) {
				c.Ledger.Backend = BackendPostgres
				c.Ledger.DatabaseURL = "postgres://localhost/waste"
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLogConfigConversion(t *testing.T) {
	lc := LogConfig{Level: "debug", Format: "text", Output: "file", FilePath: "x.log", MaxSize: 5, MaxBackups: 1, MaxAge: 2, Compress: true}
	got := lc.Logging()

	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "x.log", got.FilePath)
	assert.True(t, got.Compress)
}

func TestGet(t *testing.T) {
	t.Setenv("WASTE_TEST_GET", "  value ")
	assert.Equal(t, "value", Get("WASTE_TEST_GET", "fallback"))
	assert.Equal(t, "fallback", Get("WASTE_TEST_GET_MISSING", "fallback"))
}
