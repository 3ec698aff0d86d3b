// Package config loads docxmd CLI settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for a setting out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the CLI configuration. Pointer fields distinguish "unset"
// from false so the defaults can stay on.
type Config struct {
	Format       string `yaml:"format"`     // markdown | html | json
	Headings     string `yaml:"headings"`   // auto | classifier | style | none
	ListStyle    string `yaml:"list_style"` // paragraph style ID of list items
	PreMerge     *bool  `yaml:"premerge"`
	Normalize    *bool  `yaml:"normalize"`
	ResolveLinks bool   `yaml:"resolve_links"`
	FrontMatter  bool   `yaml:"front_matter"`
	LogLevel     string `yaml:"log_level"` // debug | info | warn | error
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML configuration file, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Format == "" {
		c.Format = "markdown"
	}
	if c.Headings == "" {
		c.Headings = "auto"
	}
	if c.ListStyle == "" {
		c.ListStyle = "ListParagraph"
	}
	if c.PreMerge == nil {
		c.PreMerge = boolPtr(true)
	}
	if c.Normalize == nil {
		c.Normalize = boolPtr(true)
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "markdown", "md", "html", "json":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	switch strings.ToLower(c.Headings) {
	case "auto", "classifier", "style", "none":
	default:
		return fmt.Errorf("%w: headings %q", ErrInvalid, c.Headings)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, s)
	}
	return lvl, nil
}

func boolPtr(b bool) *bool { return &b }
