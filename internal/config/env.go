package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix is the prefix of every lineup environment variable.
const EnvPrefix = "LINEUP_"

// EnvLoader applies environment variables onto a Config.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader for variables starting with prefix.
// The prefix should include the trailing underscore (e.g., "LINEUP_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader reading from a custom source.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// Apply overrides cfg with any variables that are set.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Apply(cfg *Config) error {
	for _, s := range l.settings(cfg) {
		raw, ok := l.lookup(l.prefix + s.name)
		if !ok {
			continue
		}
		if err := s.set(strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("%s%s: %w", l.prefix, s.name, err)
		}
	}
	return nil
}

type envSetting struct {
	name string
	set  func(string) error
}

func (l *EnvLoader) settings(cfg *Config) []envSetting {
	return []envSetting{
		{"HISTORY_MAX_ENTRIES", func(v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			cfg.History.MaxEntries = n
			return nil
		}},
		{"LOG_LEVEL", func(v string) error {
			cfg.Log.Level = strings.ToLower(v)
			return nil
		}},
		{"LOG_FORMAT", func(v string) error {
			cfg.Log.Format = strings.ToLower(v)
			return nil
		}},
		{"METRICS_ENABLED", func(v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return err
			}
			cfg.Metrics.Enabled = b
			return nil
		}},
		{"METRICS_ADDRESS", func(v string) error {
			cfg.Metrics.Address = v
			return nil
		}},
		{"SCRIPT_TIMEOUT", func(v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			cfg.Script.Timeout = Duration{d}
			return nil
		}},
	}
}
