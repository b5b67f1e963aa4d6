// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string          `yaml:"environment"`
	Logging     LoggingConfig   `yaml:"logging"`
	Report      ReportConfig    `yaml:"report"`
	ReportLog   ReportLogConfig `yaml:"report_log"`
	Batch       BatchConfig     `yaml:"batch"`
	Metrics     MetricsConfig   `yaml:"metrics"`
}

type LoggingConfig struct {
	Debug  bool   `yaml:"debug"`
	Prefix string `yaml:"prefix"`
	Output string `yaml:"output"`
}

type ReportConfig struct {
	Format        string `yaml:"format"`
	Width         int    `yaml:"width"`
	HumanReadable bool   `yaml:"human_readable"`
}

type ReportLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{Environment: "default", Metrics: MetricsConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Logging.Prefix == "" {
		c.Logging.Prefix = "collectionmem: "
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Report.Format == "" {
		c.Report.Format = FormatText
	}
	if c.Report.Width == 0 {
		c.Report.Width = 44
	}
	if c.ReportLog.Path == "" {
		c.ReportLog.Path = "reports.jsonl"
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = 4
	}
}

// Validate rejects settings the rest of the program cannot act on.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid report format %q: must be %s or %s", c.Report.Format, FormatText, FormatJSON)
	}
	if c.Report.Width < 0 {
		return fmt.Errorf("invalid report width %d", c.Report.Width)
	}
	return nil
}

func findProjectRoot() (string, error) {
	// Start from the current working directory
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Walk up the directory tree until we find the config directory
	for {
		if _, err := os.Stat(filepath.Join(dir, "config")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (no config directory found)")
		}
		dir = parent
	}
}

// LoadConfig reads config/<env>.yaml (or .yml) from the project root.
func LoadConfig(env string) (*Config, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("error finding project root: %w", err)
	}

	// Try loading with .yaml extension first
	configPath := filepath.Join(projectRoot, "config", fmt.Sprintf("%s.yaml", env))
	if _, err := os.Stat(configPath); err != nil {
		configPath = filepath.Join(projectRoot, "config", fmt.Sprintf("%s.yml", env))
	}

	config, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	config.Environment = env

	return config, nil
}

// LoadFile reads a configuration file from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Metrics stay on unless the file turns them off.
	config := Config{Metrics: MetricsConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("error validating config file: %w", err)
	}

	return &config, nil
}
