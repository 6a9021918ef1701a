package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
  read_timeout: 5s
database:
  url: postgres://localhost/skillswap
jwt:
  secret: file-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "/uploads", cfg.Storage.BaseURL)
	assert.Equal(t, DefaultMaxUploadSize, cfg.Upload.MaxSize)
	assert.ElementsMatch(t, DefaultAllowedTypes, cfg.Upload.AllowedTypes)
	assert.False(t, cfg.Reminders.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Reminders.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Reminders.Window)
}

func TestRemindersSection(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://file
jwt:
  secret: s
reminders:
  enabled: true
  interval: 1m
  window: 2h
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Reminders.Enabled)
	assert.Equal(t, time.Minute, cfg.Reminders.Interval)
	assert.Equal(t, 2*time.Hour, cfg.Reminders.Window)

	t.Setenv("REMINDERS_ENABLED", "false")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Reminders.Enabled)

	t.Setenv("REMINDERS_ENABLED", "sometimes")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8081
database:
  url: postgres://file
jwt:
  secret: file-secret
`)
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, int64(1024), cfg.Upload.MaxSize)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
}

func TestMissingFileUsesEnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestValidateReportsMissingSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestInvalidPortEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SERVER_PORT", "eighty")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestUnsupportedStorageType(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://x
jwt:
  secret: s
storage:
  type: ftp
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ftp")
}
