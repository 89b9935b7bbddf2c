package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"EDUMATE_ADDR", "EDUMATE_DB_PATH", "EDUMATE_STATIC_DIR", "EDUMATE_SECRET_KEY",
	"EDUMATE_SESSION_TTL", "EDUMATE_SESSION_SWEEP", "EDUMATE_RESET_TTL",
	"EDUMATE_COOKIE_SECURE", "EDUMATE_BCRYPT_COST", "EDUMATE_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/edumate.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.ResetTTL)
	assert.Equal(t, "@every 10m", cfg.SessionSweep)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.UsesDevSecret())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	for _, k := range keys {
		// godotenv never overrides variables that are already set.
		require.NoError(t, os.Unsetenv(k))
	}

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"EDUMATE_ADDR=127.0.0.1:9000\nEDUMATE_SECRET_KEY=s3cret\nEDUMATE_SESSION_TTL=2h\n"+
			"EDUMATE_COOKIE_SECURE=true\nEDUMATE_BCRYPT_COST=4\nEDUMATE_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.UsesDevSecret())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"EDUMATE_SESSION_TTL":   "soon",
		"EDUMATE_RESET_TTL":     "-5m",
		"EDUMATE_COOKIE_SECURE": "maybe",
		"EDUMATE_BCRYPT_COST":   "99",
		"EDUMATE_LOG_LEVEL":     "loud",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
