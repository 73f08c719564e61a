// Package config provides configuration management for the partsplit CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the main configuration structure.
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Storage  StorageConfig   `json:"storage"`
	UI       UIConfig        `json:"ui"`
}

// DefaultSettings contains default values for split operations.
type DefaultSettings struct {
	Parts     int `json:"parts"`     // Default: 3
	Threshold int `json:"threshold"` // Default: 2
}

// StorageConfig contains storage-related settings.
type StorageConfig struct {
	StorePath string `json:"store_path"` // Part store directory
}

// UIConfig contains user interface settings.
type UIConfig struct {
	UseColor bool `json:"use_color"` // Enable colored output
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	storePath := ""
	if dir, err := os.UserConfigDir(); err == nil {
		storePath = filepath.Join(dir, "partsplit", "store")
	}

	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Parts:     3,
			Threshold: 2,
		},
		Storage: StorageConfig{
			StorePath: storePath,
		},
		UI: UIConfig{
			UseColor: true,
		},
	}
}

// Path returns the location of the configuration file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "partsplit", "config.json"), nil
}

// Load reads the configuration file, falling back to defaults when it does
// not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific file.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a specific file, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Validate checks the configured defaults for sanity.
func (c *Config) Validate() error {
	if c.Defaults.Parts < 2 || c.Defaults.Parts > 255 {
		return fmt.Errorf("default parts must be between 2 and 255, got %d", c.Defaults.Parts)
	}
	if c.Defaults.Threshold < 2 || c.Defaults.Threshold > c.Defaults.Parts {
		return fmt.Errorf("default threshold must be between 2 and %d, got %d", c.Defaults.Parts, c.Defaults.Threshold)
	}
	return nil
}
