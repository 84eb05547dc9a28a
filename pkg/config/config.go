package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the scraper. Settings are owned by
// the environment; an optional YAML file provides defaults for variables
// that are not set (see store.go).
type Config struct {
	// StealthMode enables anti-detection launch arguments and context options
	StealthMode bool `envconfig:"STEALTH_MODE" default:"true"`

	// Headless controls whether the browser runs without a visible window
	Headless bool `envconfig:"HEADLESS" default:"false"`

	// Channel is the preferred browser channel (falls back to stock Chromium)
	Channel string `envconfig:"BROWSER_CHANNEL" default:"chrome"`

	// Display is the X display used when running headed under Xvfb
	Display string `envconfig:"DISPLAY" default:":99"`

	// UserDataDir is the persistent profile directory for the stealth context
	UserDataDir string `envconfig:"USER_DATA_DIR" default:"/tmp/browser_data"`

	// IdleTimeoutMinutes is how long a sub-agent session may sit idle
	// before the background sweep reclaims it
	IdleTimeoutMinutes int `envconfig:"IDLE_TIMEOUT_MINUTES" default:"30"`

	// MaxSessions caps the number of concurrent sub-agent sessions
	MaxSessions int `envconfig:"MAX_SESSIONS" default:"10"`

	// Port is the HTTP transport listen port
	Port int `envconfig:"PORT" default:"8080"`
}

// IdleTimeout returns the session idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// Load builds the configuration from the environment, falling back to the
// YAML file at path (or the default location when path is empty) for any
// variable the environment does not set. Environment always wins.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	file, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if file != nil {
		applyFileDefaults(cfg, file)
	}

	if cfg.IdleTimeoutMinutes <= 0 {
		return nil, fmt.Errorf("IDLE_TIMEOUT_MINUTES must be positive, got %d", cfg.IdleTimeoutMinutes)
	}
	if cfg.MaxSessions <= 0 {
		return nil, fmt.Errorf("MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
	}

	return cfg, nil
}

// DefaultPath returns the default config file location (~/.brave-scraper/config.yaml).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".brave-scraper", "config.yaml"), nil
}

// applyFileDefaults copies file values into cfg for every setting whose
// environment variable is unset.
func applyFileDefaults(cfg *Config, file *fileConfig) {
	if _, ok := os.LookupEnv("STEALTH_MODE"); !ok && file.StealthMode != nil {
		cfg.StealthMode = *file.StealthMode
	}
	if _, ok := os.LookupEnv("HEADLESS"); !ok && file.Headless != nil {
		cfg.Headless = *file.Headless
	}
	if _, ok := os.LookupEnv("BROWSER_CHANNEL"); !ok && file.Channel != nil {
		cfg.Channel = *file.Channel
	}
	if _, ok := os.LookupEnv("DISPLAY"); !ok && file.Display != nil {
		cfg.Display = *file.Display
	}
	if _, ok := os.LookupEnv("USER_DATA_DIR"); !ok && file.UserDataDir != nil {
		cfg.UserDataDir = *file.UserDataDir
	}
	if _, ok := os.LookupEnv("IDLE_TIMEOUT_MINUTES"); !ok && file.IdleTimeoutMinutes != nil {
		cfg.IdleTimeoutMinutes = *file.IdleTimeoutMinutes
	}
	if _, ok := os.LookupEnv("MAX_SESSIONS"); !ok && file.MaxSessions != nil {
		cfg.MaxSessions = *file.MaxSessions
	}
	if _, ok := os.LookupEnv("PORT"); !ok && file.Port != nil {
		cfg.Port = *file.Port
	}
}
