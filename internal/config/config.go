// Package config loads the client configuration from
// $XDG_CONFIG_HOME/tutor/config.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	configDirName = "tutor"
	configFile    = "config.yaml"
)

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
}

// ServerConfig points the client at a tutor service instance.
type ServerConfig struct {
	URL string `yaml:"url" default:"http://localhost:8000"`
	// RequestTimeout bounds the non-streaming API calls. The reply
	// stream itself is never timed out by the client.
	RequestTimeout time.Duration `yaml:"requestTimeout" default:"30s"`
}

// UnmarshalYAML accepts requestTimeout in time.ParseDuration form
// ("30s", "2m"). Bare integers are taken as nanoseconds for files
// written before durations were serialized as strings. Omitted fields
// keep whatever value the struct already holds.
func (s *ServerConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		URL            string `yaml:"url"`
		RequestTimeout string `yaml:"requestTimeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.URL != "" {
		s.URL = raw.URL
	}
	if raw.RequestTimeout != "" {
		d, err := time.ParseDuration(raw.RequestTimeout)
		if err != nil {
			ns, nerr := strconv.ParseInt(raw.RequestTimeout, 10, 64)
			if nerr != nil {
				return fmt.Errorf("requestTimeout %q: %w", raw.RequestTimeout, err)
			}
			d = time.Duration(ns)
		}
		s.RequestTimeout = d
	}
	return nil
}

// MarshalYAML writes the timeout in the same form UnmarshalYAML reads.
func (s ServerConfig) MarshalYAML() (any, error) {
	return struct {
		URL            string `yaml:"url"`
		RequestTimeout string `yaml:"requestTimeout"`
	}{s.URL, s.RequestTimeout.String()}, nil
}

// UIConfig configures appearance.
type UIConfig struct {
	Theme      string `yaml:"theme" default:"default"`
	ShowUsage  bool   `yaml:"showUsage" default:"true"`
	PlainText  bool   `yaml:"plainText"`
	ShowFooter bool   `yaml:"showFooter" default:"true"`
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{}
	// Tags are static; SetDefaults cannot fail on this struct.
	_ = defaults.Set(cfg)
	return cfg
}

// Path returns the config file location.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return configFile
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, configDirName, configFile)
}

// Load reads the config file, filling omitted fields with defaults. A
// missing file yields the default config, not an error.
func Load() (*Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config, creating the config dir if needed.
func Save(cfg *Config) error {
	return saveTo(Path(), cfg)
}

func saveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SaveTheme updates only the theme name in the stored config.
func SaveTheme(name string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme = name
	return Save(cfg)
}
