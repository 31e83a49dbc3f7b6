// Package config loads naming and runtime configuration from YAML
// files and environment variables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"digital.vasic.testnames/pkg/logging"
	"digital.vasic.testnames/pkg/naming"
)

// Config is the top-level configuration.
type Config struct {
	Naming  NamingConfig  `yaml:"naming"`
	Log     LogConfig     `yaml:"log"`
	Monitor MonitorConfig `yaml:"monitor"`
}

// NamingConfig controls how invocation names are rendered.
type NamingConfig struct {
	// Pattern is the method-name template.
	Pattern string `yaml:"pattern"`

	// Placeholders overrides the template tokens.
	Placeholders naming.Placeholders `yaml:"placeholders"`

	// RowFormat is the data-row suffix format.
	RowFormat string `yaml:"row_format"`

	// RepeatFormat is the repeat suffix format.
	RepeatFormat string `yaml:"repeat_format"`

	// UIDMarker introduces a unique id inside a parameter.
	UIDMarker string `yaml:"uid_marker"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	// File, when set, receives JSON log lines.
	File string `yaml:"file"`
}

// MonitorConfig controls the live monitor server.
type MonitorConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Naming: NamingConfig{
			Pattern:      naming.DefaultTemplate,
			Placeholders: naming.DefaultPlaceholders(),
			RowFormat:    naming.DefaultRowFormat,
			RepeatFormat: naming.DefaultRepeatFormat,
			UIDMarker:    naming.DefaultUIDMarker,
		},
		Log:     LogConfig{Level: "info"},
		Monitor: MonitorConfig{Addr: ":8089"},
	}
}

// Load reads path over the defaults and applies environment
// overrides. An empty path yields defaults plus environment.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, NewEnv())
}

// LoadWithEnv is Load with overrides resolved through env.
func LoadWithEnv(path string, env *Env) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf(
				"read config %s: %w", path, err,
			)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf(
				"parse config %s: %w", path, err,
			)
		}
	}
	cfg.ApplyEnv(env)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// NamingPattern returns the configured method-name template.
func (c *Config) NamingPattern() string {
	return c.Naming.Pattern
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() logging.LogLevel {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// EngineOptions returns the naming engine options described by the
// configuration.
func (c *Config) EngineOptions() []naming.Option {
	return []naming.Option{
		naming.WithPatternSource(c),
		naming.WithPlaceholders(c.Naming.Placeholders),
		naming.WithRowFormat(c.Naming.RowFormat),
		naming.WithRepeatFormat(c.Naming.RepeatFormat),
		naming.WithUIDMarker(c.Naming.UIDMarker),
	}
}
