package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "todocal"
	configFile = "config.yaml"
)

type Config struct {
	// Calendar is the destination calendar's display name. Empty means no
	// calendar has been selected yet; a sync pass refuses to start.
	Calendar string `yaml:"calendar"`
	// Year is the target year used to resolve month/day section headers.
	// Zero means the current year.
	Year int `yaml:"year,omitempty"`
	// Timezone is the IANA zone name for timed events, e.g. "Asia/Tokyo".
	Timezone string `yaml:"timezone,omitempty"`
	// Sync is the cron spec for the periodic trigger.
	Sync string `yaml:"sync,omitempty"`
	// TodoFolder is the root folder of the todo documents in Drive.
	TodoFolder string `yaml:"todo_folder,omitempty"`
}

func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName, configFile), nil
}

// Load reads the config file, applying defaults for missing fields. A
// missing file yields a default config with no calendar selected.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}
	if cfg.Sync == "" {
		cfg.Sync = "@every 15m"
	}
	if cfg.TodoFolder == "" {
		cfg.TodoFolder = "Todo"
	}
}

// Location resolves the configured timezone, falling back to the local zone.
func (cfg *Config) Location() (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
