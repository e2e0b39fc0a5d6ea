// Package config loads process-wide configuration once at startup.
//
// Scalar settings come from environment variables (envconfig); the
// structured rendering configuration (attribute set, dispatcher order,
// enlarge subset, preview rules) comes from an optional YAML file so it
// can express lists env vars cannot.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process configuration.
type Config struct {
	Server  ServerConfig
	Logging LogConfig
	Session SessionConfig
	Render  RenderConfig `ignored:"true"`
}

// ServerConfig holds the debug HTTP server configuration.
type ServerConfig struct {
	Port    string `envconfig:"DIRVIEW_PORT" default:"7350"`
	Host    string `envconfig:"DIRVIEW_HOST" default:"127.0.0.1"`
	Enabled bool   `envconfig:"DIRVIEW_DEBUG_API" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"DIRVIEW_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"DIRVIEW_LOG_DEV" default:"false"`
}

// SessionConfig holds per-session defaults.
type SessionConfig struct {
	// DefaultDepth is the overlay depth new sessions start with.
	// -1 creates plain sessions that never take over the surface layout.
	DefaultDepth    int    `envconfig:"DIRVIEW_DEFAULT_DEPTH" default:"1"`
	ListingSwitches string `envconfig:"DIRVIEW_LISTING_SWITCHES" default:"-al --group-directories-first"`
	ConfigFile      string `envconfig:"DIRVIEW_CONFIG" default:""`
}

// RenderConfig is the structured rendering configuration, loaded from
// the YAML file named by DIRVIEW_CONFIG. All names are validated against
// the capability registries at load time.
type RenderConfig struct {
	// Attributes are extra attribute names unioned with the built-in set.
	Attributes []string `yaml:"attributes"`
	// Enlarge lists attribute names that force full-width rendering.
	Enlarge []string `yaml:"enlarge"`
	// Dispatchers is the configured middle of the preview chain, in
	// priority order. "disable" and "default" are always added around it.
	Dispatchers []string `yaml:"dispatchers"`
	// PreviewRules map entry globs to preview kinds for the rules dispatcher.
	PreviewRules []PreviewRule `yaml:"preview_rules"`
	// DisableGlobs veto preview entirely for matching entries.
	DisableGlobs []string `yaml:"disable_globs"`
}

// PreviewRule pairs a doublestar glob with the preview kind to produce.
type PreviewRule struct {
	Pattern string `yaml:"pattern"`
	Kind    string `yaml:"kind"`
}

// Load loads configuration from environment variables and, when set,
// the YAML render configuration file.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Session.ConfigFile != "" {
		data, err := os.ReadFile(cfg.Session.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfg.Session.ConfigFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg.Render); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", cfg.Session.ConfigFile, err)
		}
	}

	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "7350",
			Host:    "127.0.0.1",
			Enabled: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Session: SessionConfig{
			DefaultDepth:    1,
			ListingSwitches: "-al --group-directories-first",
		},
	}
}

// ValidateRender checks every configured name against the known
// capability names. Unknown names are a configuration error reported at
// load time, not a runtime dispatch failure.
func (c *Config) ValidateRender(knownAttributes, knownDispatchers map[string]bool) error {
	for _, name := range c.Render.Attributes {
		if !knownAttributes[name] {
			return fmt.Errorf("unknown attribute %q in configuration", name)
		}
	}
	for _, name := range c.Render.Enlarge {
		if !knownAttributes[name] {
			return fmt.Errorf("unknown enlarge attribute %q in configuration", name)
		}
	}
	for _, name := range c.Render.Dispatchers {
		if !knownDispatchers[name] {
			return fmt.Errorf("unknown preview dispatcher %q in configuration", name)
		}
	}
	return nil
}
