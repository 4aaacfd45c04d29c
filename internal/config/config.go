// Package config provides configuration loading for the assessor CLI and
// server, plus password-hashing and JWT settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the optional JSON configuration file. All fields are optional;
// missing values use defaults or come from CLI flags and the environment.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	APIKey      string `json:"api_key,omitempty"`

	// Model overrides, keyed by tier name ("lite", "standard", "advanced").
	Models map[string]string `json:"models,omitempty"`

	// UseBrowser enables the headless-browser fallback when analyzing
	// postings fetched from URLs.
	UseBrowser bool `json:"use_browser,omitempty"`
	Verbose    bool `json:"verbose,omitempty"`
}

// Load reads and parses a JSON config file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	for tier := range c.Models {
		switch tier {
		case "lite", "standard", "advanced":
		default:
			return fmt.Errorf("config error: unknown model tier %q", tier)
		}
	}
	return nil
}
