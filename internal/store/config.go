package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr            string `yaml:"addr"`
		ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
		WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	} `yaml:"server"`
	Source struct {
		URL        string `yaml:"url"`
		TimeoutSec int    `yaml:"timeout_sec"`
		MinRows    int    `yaml:"min_rows"`
	} `yaml:"source"`
	Flows struct {
		WindowDays    int `yaml:"window_days"`
		GeneratorDays int `yaml:"generator_days"`
		CacheTTLSec   int `yaml:"cache_ttl_sec"`
	} `yaml:"flows"`
}

// DefaultConfig returns the configuration the service runs with when no
// config file is present. The min-rows threshold and trailing window are
// policy constants, kept configurable.
func DefaultConfig() *Config {
	c := &Config{}
	c.Server.Addr = ":8080"
	c.Server.ReadTimeoutSec = 10
	c.Server.WriteTimeoutSec = 30
	c.Source.URL = "https://farside.co.uk/btc/"
	c.Source.TimeoutSec = 30
	c.Source.MinRows = 5
	c.Flows.WindowDays = 90
	c.Flows.GeneratorDays = 90
	c.Flows.CacheTTLSec = 3600
	return c
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Source.URL, "http://") && !strings.HasPrefix(c.Source.URL, "https://") {
		return fmt.Errorf("invalid source.url '%s': must be an http(s) URL", c.Source.URL)
	}
	if c.Source.MinRows < 1 {
		return fmt.Errorf("source.min_rows must be >= 1, got %d", c.Source.MinRows)
	}
	if c.Source.TimeoutSec <= 0 {
		return fmt.Errorf("source.timeout_sec must be positive, got %d", c.Source.TimeoutSec)
	}
	if c.Flows.WindowDays < 1 {
		return fmt.Errorf("flows.window_days must be >= 1, got %d", c.Flows.WindowDays)
	}
	if c.Flows.GeneratorDays < c.Source.MinRows {
		return fmt.Errorf("flows.generator_days (%d) must cover at least source.min_rows (%d)",
			c.Flows.GeneratorDays, c.Source.MinRows)
	}
	if c.Flows.CacheTTLSec < 0 {
		return fmt.Errorf("flows.cache_ttl_sec must not be negative, got %d", c.Flows.CacheTTLSec)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	return nil
}

// LoadConfig reads a yaml config file on top of the defaults. A missing file
// is not an error: the defaults alone describe a fully working service.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FetchTimeout returns the source fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSec) * time.Second
}

// CacheTTL returns the result cache staleness window as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Flows.CacheTTLSec) * time.Second
}
