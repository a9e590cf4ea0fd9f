// Package config loads the TOML configuration file and applies defaults.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Roots      []string  `toml:"roots"`
	Extensions []string  `toml:"extensions"`
	Exclude    Exclude   `toml:"exclude"`
	Watch      Watch     `toml:"watch"`
	History    History   `toml:"history"`
	Telemetry  Telemetry `toml:"telemetry"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// MaxFlushesPerSecond caps how often debounced change batches reach the
	// population engine during heavy churn (branch switches, formatters).
	MaxFlushesPerSecond float64 `toml:"max_flushes_per_second"`
}

type History struct {
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Telemetry struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if len(c.Roots) == 0 {
		c.Roots = []string{"."}
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".sysml", ".kerml"}
	}
	if len(c.Exclude.Dirs) == 0 {
		c.Exclude.Dirs = []string{".git", "node_modules", "build", "target"}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 500 * time.Millisecond
	}
	if c.Watch.MaxFlushesPerSecond == 0 {
		c.Watch.MaxFlushesPerSecond = 4
	}
	if c.History.ProjectKey == "" {
		c.History.ProjectKey = "default"
	}
}
