// Package config loads lineup settings from a TOML file and the environment.
//
// Precedence, lowest to highest: built-in defaults, the TOML file,
// LINEUP_* environment variables. Command-line flags are applied by the
// caller on top of the returned Config.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values. A zero history limit keeps every command.
const (
	DefaultMaxEntries    = 0
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultMetricsAddr   = ":9090"
	DefaultScriptTimeout = 5 * time.Second
)

// Config is the full lineup configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Script  ScriptConfig  `toml:"script"`
}

// HistoryConfig controls the undo history.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error
	Format string `toml:"format"` // console or json
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Address string `toml:"address"`
}

// ScriptConfig controls Lua script execution.
type ScriptConfig struct {
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration that decodes from strings like "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History: HistoryConfig{MaxEntries: DefaultMaxEntries},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Metrics: MetricsConfig{Address: DefaultMetricsAddr},
		Script:  ScriptConfig{Timeout: Duration{DefaultScriptTimeout}},
	}
}

// Load reads the TOML file at path over the defaults and then applies
// environment overrides. A missing file is not an error; an empty path
// skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := cfg.decode(path, data); err != nil {
				return nil, err
			}
		}
	}

	if err := NewEnvLoader(EnvPrefix).Apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromReader reads TOML configuration from r over the defaults.
// Environment variables are not consulted.
func LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := cfg.decode("<reader>", data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(source string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		if de, ok := err.(*toml.DecodeError); ok {
			pe.Line, pe.Column = de.Position()
		}
		return pe
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.History.MaxEntries < 0 {
		return &ValidationError{Key: "history.max_entries", Message: "must not be negative (0 means unlimited)"}
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return &ValidationError{Key: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return &ValidationError{Key: "log.format", Message: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return &ValidationError{Key: "metrics.address", Message: "required when metrics are enabled"}
	}
	if c.Script.Timeout.Duration <= 0 {
		return &ValidationError{Key: "script.timeout", Message: "must be positive"}
	}
	return nil
}
