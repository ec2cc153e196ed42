package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the glimpse configuration file. Every key is optional;
// zero values mean "not set" and the caller falls back to its defaults.
type Config struct {
	// Pager is the pager command line, e.g. "less -SR".
	Pager string `yaml:"pager"`
	// Limit is the default row-sample size.
	Limit int `yaml:"limit"`
	// Color is the styling mode: auto, always, or never.
	Color string `yaml:"color"`
}

// Load reads and parses a YAML configuration file. Environment variables
// referenced as ${VAR_NAME} in the file are expanded before parsing.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	content := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the values a config file may set.
func (c *Config) Validate() error {
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always, or never)", c.Color)
	}
	if c.Limit < 0 {
		return fmt.Errorf("invalid limit %d", c.Limit)
	}
	return nil
}

// Default returns a Config pre-filled with the documented defaults.
func Default() *Config {
	return &Config{
		Pager: "less -SR",
		Limit: 12,
		Color: "auto",
	}
}

// DefaultPath is the config file location used when --config is not given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "glimpse", "config.yaml")
}

// WriteDefault writes the default configuration to a YAML file, creating
// parent directories as needed.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
