package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RefreshInterval time.Duration `yaml:"-"`
	RawInterval     string        `yaml:"refresh_interval"`
	SessionPrefix   string        `yaml:"session_prefix"`
	MergedPRLimit   int           `yaml:"merged_pr_limit"`
	LogFile         string        `yaml:"log_file"`
	Amp             AmpConfig     `yaml:"amp"`
	Log             LogConfig     `yaml:"log"`
}

type AmpConfig struct {
	Command string `yaml:"command"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads the config file at path. A missing file is not an error: the
// monitor runs with pure defaults so it needs zero setup.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() error {
	if c.RawInterval == "" {
		c.RawInterval = "5s"
	}
	d, err := time.ParseDuration(c.RawInterval)
	if err != nil {
		return fmt.Errorf("parse refresh_interval %q: %w", c.RawInterval, err)
	}
	c.RefreshInterval = d

	if c.SessionPrefix == "" {
		c.SessionPrefix = "amptown"
	}
	if c.MergedPRLimit == 0 {
		c.MergedPRLimit = 10
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(os.TempDir(), "ampwatch", "ampwatch.log")
	}
	if c.Amp.Command == "" {
		c.Amp.Command = "amp"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	return nil
}

func (c *Config) validate() error {
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RawInterval)
	}
	if c.MergedPRLimit < 0 {
		return fmt.Errorf("merged_pr_limit must not be negative, got %d", c.MergedPRLimit)
	}
	return nil
}
