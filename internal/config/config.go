// Package config loads the application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"atelier/internal/production"
)

// Duration wraps time.Duration so YAML values like "3s" parse directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration.
type Config struct {
	Port          int    `yaml:"port"`
	LogLevel      string `yaml:"log_level"`
	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Simulation struct {
		InitialDelay Duration `yaml:"initial_delay"`
		TickInterval Duration `yaml:"tick_interval"`
	} `yaml:"simulation"`
	ReassignmentPolicy production.ReassignmentPolicy `yaml:"reassignment_policy"`
}

// Default returns the configuration used when no file is given. The
// simulation timings match the dashboard's original pacing: first tick
// after 2s + 3s, then one tick every 3s.
func Default() *Config {
	cfg := &Config{
		Port:               8080,
		LogLevel:           "info",
		ReassignmentPolicy: production.ReassignRelease,
	}
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Port = 9090
	cfg.MetricsConfig.Path = "/metrics"
	cfg.Simulation.InitialDelay = Duration(2 * time.Second)
	cfg.Simulation.TickInterval = Duration(3 * time.Second)
	return cfg
}

// Load reads and validates the configuration file at path. Missing fields
// keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MetricsConfig.Enabled && (c.MetricsConfig.Port <= 0 || c.MetricsConfig.Port > 65535) {
		return fmt.Errorf("invalid metrics port %d", c.MetricsConfig.Port)
	}
	if c.Simulation.InitialDelay < 0 {
		return fmt.Errorf("initial delay cannot be negative")
	}
	if c.Simulation.TickInterval.Std() <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	switch c.ReassignmentPolicy {
	case production.ReassignRelease, production.ReassignReject:
	default:
		return fmt.Errorf("invalid reassignment policy %q", c.ReassignmentPolicy)
	}
	return nil
}
