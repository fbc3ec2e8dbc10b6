package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment can't leak in.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_TIMEZONE", "STORE_BACKEND", "STORE_LOCATION", "STORE_ROOT",
		"CONNECT_MAX_ATTEMPTS", "CONNECT_BACKOFF", "DATABASE_URL", "DB_MAX_CONNS", "DB_QUERY_TIMEOUT",
		"DB_AUTO_MIGRATE", "REDIS_URL", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD",
		"REDIS_DB", "REDIS_DIAL_TIMEOUT", "REDIS_RECORD_TTL", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "base.bin", cfg.Store.Location)
	assert.Equal(t, 3, cfg.Store.ConnectMaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Store.ConnectBackoff)
	assert.NotNil(t, cfg.App.Location)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "postgres")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg.Store.Backend = BackendFile
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("STORE_LOCATION", "classe.bin")
	t.Setenv("REDIS_RECORD_TTL", "90s")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "classe.bin", cfg.Store.Location)
	assert.Equal(t, 90*time.Second, cfg.Redis.RecordTTL)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "studentbase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: postgres
  location: promo-2024
database:
  url: postgres://u:p@localhost:5432/db
  query_timeout: 3s
observability:
  log_level: debug
`), 0o644))

	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, "promo-2024", cfg.Store.Location)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.Database.URL)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "error", cfg.Observability.LogLevel)
	assert.True(t, cfg.Database.AutoMigrate, "unset keys keep their defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Store.Backend = "ftp"
	cfg.Store.Location = " "
	cfg.Store.ConnectMaxAttempts = 0
	cfg.Store.ConnectBackoff = -time.Second
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
	assert.Contains(t, err.Error(), "STORE_LOCATION")
	assert.Contains(t, err.Error(), "CONNECT_MAX_ATTEMPTS")
	assert.Contains(t, err.Error(), "CONNECT_BACKOFF")

	cfg = Default()
	cfg.Store.Backend = BackendPostgres
	assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
}
