package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STEALTH_MODE", "HEADLESS", "BROWSER_CHANNEL", "DISPLAY",
		"USER_DATA_DIR", "IDLE_TIMEOUT_MINUTES", "MAX_SESSIONS", "PORT",
	} {
		if val, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, val) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.StealthMode)
	assert.False(t, cfg.Headless)
	assert.Equal(t, "chrome", cfg.Channel)
	assert.Equal(t, ":99", cfg.Display)
	assert.Equal(t, "/tmp/browser_data", cfg.UserDataDir)
	assert.Equal(t, 30, cfg.IdleTimeoutMinutes)
	assert.Equal(t, 30*time.Minute, cfg.IdleTimeout())
	assert.Equal(t, 10, cfg.MaxSessions)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HEADLESS", "true")
	t.Setenv("BROWSER_CHANNEL", "chromium")
	t.Setenv("IDLE_TIMEOUT_MINUTES", "5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Headless)
	assert.Equal(t, "chromium", cfg.Channel)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout())
}

func TestLoadFileDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "headless: true\nmax_sessions: 3\nchannel: msedge\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Headless)
	assert.Equal(t, 3, cfg.MaxSessions)
	assert.Equal(t, "msedge", cfg.Channel)
	// Untouched settings keep their defaults
	assert.True(t, cfg.StealthMode)
	assert.Equal(t, 8080, cfg.Port)
}

func TestEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_SESSIONS", "7")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_sessions: 3\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxSessions)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero idle timeout", key: "IDLE_TIMEOUT_MINUTES", value: "0"},
		{name: "negative max sessions", key: "MAX_SESSIONS", value: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headless: [not a bool\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}
