// Package config loads the warehouse YAML configuration: logging, the
// cross-check kernel, run history and the scenarios to evaluate.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"warehouse/internal/logging"
	"warehouse/internal/mangle"
)

// Config holds all warehouse configuration.
type Config struct {
	Logging   logging.Config `yaml:"logging"`
	Kernel    KernelConfig   `yaml:"kernel"`
	Store     StoreConfig    `yaml:"store"`
	Scenarios []Scenario     `yaml:"scenarios"`
}

// KernelConfig configures the Mangle cross-check.
type KernelConfig struct {
	Verify bool          `yaml:"verify"`
	Mangle mangle.Config `yaml:"mangle"`
}

// StoreConfig configures run history.
type StoreConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the default configuration with the two walkthrough
// scenarios: the agent at the start square, then after stepping east.
func DefaultConfig() *Config {
	return &Config{
		Logging: logging.Config{
			Level: "info",
		},
		Kernel: KernelConfig{
			Verify: false,
			Mangle: mangle.DefaultConfig(),
		},
		Store: StoreConfig{
			Enabled:      false,
			DatabasePath: filepath.Join(".warehouse", "runs.db"),
		},
		Scenarios: []Scenario{
			{
				Name:        "start",
				Description: "at (1,1), no creaking, no noise",
				Percepts: []PerceptSpec{
					{Signal: "C", X: 1, Y: 1, Value: false},
					{Signal: "N", X: 1, Y: 1, Value: false},
				},
			},
			{
				Name:        "east",
				Description: "moved to (2,1), creaking, no noise",
				Percepts: []PerceptSpec{
					{Signal: "C", X: 1, Y: 1, Value: false},
					{Signal: "N", X: 1, Y: 1, Value: false},
					{Signal: "C", X: 2, Y: 1, Value: true},
					{Signal: "N", X: 2, Y: 1, Value: false},
				},
			},
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every scenario.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Scenarios))
	for i, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("%w: scenario %d has no name", ErrInvalidScenario, i)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate scenario name %q", ErrInvalidScenario, s.Name)
		}
		seen[s.Name] = true
		if _, err := s.Observations(); err != nil {
			return err
		}
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Scenario returns the named scenario.
func (c *Config) Scenario(name string) (Scenario, bool) {
	for _, s := range c.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("WAREHOUSE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv("WAREHOUSE_DB"); path != "" {
		c.Store.DatabasePath = path
		c.Store.Enabled = true
	}
	if v := os.Getenv("WAREHOUSE_VERIFY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Kernel.Verify = b
		}
	}
}
