package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "automata.yaml"

// Source selects where definitions are loaded from.
type Source string

const (
	SourceLoam  Source = "loam"
	SourceFile  Source = "file"
	SourceRedis Source = "redis"
)

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	Metrics bool   `yaml:"metrics" json:"metrics"`
}

// RedisConfig configures the redis definition store.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// Config represents the structure of automata.yaml.
type Config struct {
	Dir      string      `yaml:"dir" json:"dir"`
	Source   Source      `yaml:"source" json:"source"`
	LogLevel string      `yaml:"log_level" json:"log_level"`
	HTTP     HTTPConfig  `yaml:"http" json:"http"`
	Redis    RedisConfig `yaml:"redis" json:"redis"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Dir:      ".",
		Source:   SourceLoam,
		LogLevel: "info",
		HTTP: HTTPConfig{
			Addr:    ":8080",
			Metrics: true,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "automata:",
		},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.Source {
	case SourceLoam, SourceFile, SourceRedis:
	default:
		return fmt.Errorf("unknown source %q (want loam, file or redis)", c.Source)
	}
	if c.Source == SourceRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis source requires redis.addr")
	}
	return nil
}
