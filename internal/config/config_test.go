package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobboard")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := LoadFile("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "jobboard", cfg.App.AppName)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxResumeBytes)
	assert.Equal(t, "@every 24h", cfg.Scheduler.NotificationRetentionSpec)
	assert.Equal(t, 6, cfg.AI.RatePerMinute)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("SCHEDULER_RETENTION_DAYS", "7")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 7, cfg.Scheduler.RetentionDays)
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "")

	path := filepath.Join(t.TempDir(), "jobboard.yaml")
	body := "redis:\n  host: cache.internal\nsmtp:\n  host: smtp.internal\n  port: 2525\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, "smtp.internal", cfg.Mail.Host)
	assert.Equal(t, 2525, cfg.Mail.Port)
}
