// Package config loads the optional schemadoc YAML config file. Command-line
// flags override anything set here.
package config

import (
	"fmt"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when --config is unset.
const DefaultFile = "schemadoc.yaml"

// Config holds documentation options.
type Config struct {
	Title   string   `yaml:"title"`
	Output  string   `yaml:"output"`
	Format  string   `yaml:"format"`
	Exclude []string `yaml:"exclude"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{Format: "markdown"}
}

// Load reads the config file at p. An empty p falls back to DefaultFile if
// it exists, otherwise the defaults are returned.
func Load(p string) (*Config, error) {
	if p == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return Default(), nil
		}
		p = DefaultFile
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", p, err)
	}
	if cfg.Format == "" {
		cfg.Format = "markdown"
	}
	if cfg.Format != "markdown" && cfg.Format != "text" {
		return nil, fmt.Errorf("config file %s: unknown format %q", p, cfg.Format)
	}
	return cfg, nil
}

// Excluded reports whether a table name matches any exclude pattern.
// Patterns use path.Match globs, e.g. "audit_*".
func (c *Config) Excluded(table string) bool {
	for _, pat := range c.Exclude {
		if ok, err := path.Match(pat, table); err == nil && ok {
			return true
		}
	}
	return false
}
