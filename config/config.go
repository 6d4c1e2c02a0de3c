// Package config loads listenctl configuration files.
//
// A configuration names the listeners to take into use and how to run them:
//
//	log_level: WARN
//	listeners:
//	  - source: listeners/trace.lua
//	    args: [verbose]
//	lua:
//	  timeout: 2s
//	metrics:
//	  enabled: true
//	  namespace: listen
//	console:
//	  level: info
//
// YAML, JSON and TOML files are supported.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rickchristie/listen"
	"gopkg.in/yaml.v3"
)

// Defaults for zero values.
const (
	DefaultLogLevel     = listen.LevelInfo
	DefaultLuaTimeout   = "0s"
	DefaultNamespace    = "listen"
	DefaultConsoleLevel = "info"
)

// Config holds the listenctl configuration.
// Zero values mean "unspecified" and are replaced by Defaults.
type Config struct {
	LogLevel  string         `json:"log_level,omitempty" yaml:"log_level" toml:"log_level"`
	Listeners []ListenerSpec `json:"listeners,omitempty" yaml:"listeners" toml:"listeners"`
	Lua       LuaConfig      `json:"lua" yaml:"lua" toml:"lua"`
	Metrics   MetricsConfig  `json:"metrics" yaml:"metrics" toml:"metrics"`
	Console   ConsoleConfig  `json:"console" yaml:"console" toml:"console"`
}

// ListenerSpec is one listener to take into use.
type ListenerSpec struct {
	Source string   `json:"source" yaml:"source" toml:"source"`
	Args   []string `json:"args,omitempty" yaml:"args" toml:"args"`
}

// LuaConfig configures Lua listeners.
type LuaConfig struct {
	// Timeout limits a single listener method call, e.g. "2s". Zero means
	// no limit.
	Timeout string `json:"timeout,omitempty" yaml:"timeout" toml:"timeout"`
}

// MetricsConfig configures listener call metrics.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace" toml:"namespace"`
}

// ConsoleConfig configures the console logger.
type ConsoleConfig struct {
	Level   string `json:"level,omitempty" yaml:"level" toml:"level"`
	NoColor bool   `json:"no_color" yaml:"no_color" toml:"no_color"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Defaults returns cfg with zero values replaced by defaults.
func (cfg Config) Defaults() Config {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Lua.Timeout == "" {
		cfg.Lua.Timeout = DefaultLuaTimeout
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultNamespace
	}
	if cfg.Console.Level == "" {
		cfg.Console.Level = DefaultConsoleLevel
	}
	return cfg
}

// LuaTimeout returns the parsed Lua call timeout.
func (cfg Config) LuaTimeout() (time.Duration, error) {
	if cfg.Lua.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(cfg.Lua.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid lua timeout %q: %w", cfg.Lua.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid lua timeout %q: negative", cfg.Lua.Timeout)
	}
	return d, nil
}

// Sources returns the listener sources in the string form accepted by
// listen.Import. Arguments are joined with ':' unless one of them contains a
// colon, in which case ';' is used.
func (cfg Config) Sources() []any {
	sources := make([]any, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		sources[i] = l.String()
	}
	return sources
}

// String returns the listener source with its arguments.
func (l ListenerSpec) String() string {
	if len(l.Args) == 0 {
		return l.Source
	}
	sep := ":"
	for _, a := range l.Args {
		if strings.Contains(a, ":") {
			sep = ";"
			break
		}
	}
	return l.Source + sep + strings.Join(l.Args, sep)
}
