package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with pointer fields so we can tell which
// settings the file actually provides.
type fileConfig struct {
	StealthMode        *bool   `yaml:"stealth_mode"`
	Headless           *bool   `yaml:"headless"`
	Channel            *string `yaml:"channel"`
	Display            *string `yaml:"display"`
	UserDataDir        *string `yaml:"user_data_dir"`
	IdleTimeoutMinutes *int    `yaml:"idle_timeout_minutes"`
	MaxSessions        *int    `yaml:"max_sessions"`
	Port               *int    `yaml:"port"`
}

// loadFile reads the YAML config file at path. When path is empty the
// default location is used. A missing file is not an error; the file is
// optional.
func loadFile(path string) (*fileConfig, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			// No home directory means no default file; env-only config
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &file, nil
}
