package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing default file is not an error.
const DefaultPath = "turing.yaml"

// Store drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config represents the structure of turing.yaml.
type Config struct {
	LogLevel string       `yaml:"log_level" json:"log_level"`
	LogFile  string       `yaml:"log_file" json:"log_file"`
	MaxSteps int          `yaml:"max_steps" json:"max_steps"`
	Color    string       `yaml:"color" json:"color"`
	Store    StoreConfig  `yaml:"store" json:"store"`
	Server   ServerConfig `yaml:"server" json:"server"`
}

// StoreConfig selects the program store.
type StoreConfig struct {
	Driver string      `yaml:"driver" json:"driver"`
	Path   string      `yaml:"path" json:"path"`
	Redis  RedisConfig `yaml:"redis" json:"redis"`
}

// RedisConfig configures the redis driver. TTL is a Go duration string; empty means no expiry.
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	TTL      string `yaml:"ttl" json:"ttl"`
}

// ServerConfig configures `turing serve`. SessionIdle is a Go duration
// string; empty keeps stepping sessions until they are deleted.
type ServerConfig struct {
	Addr        string `yaml:"addr" json:"addr"`
	SessionIdle string `yaml:"session_idle" json:"session_idle"`
	MaxSessions int    `yaml:"max_sessions" json:"max_sessions"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		MaxSteps: 100_000,
		Color:    "auto",
		Store: StoreConfig{
			Driver: DriverFile,
			Path:   filepath.Join(".turing", "programs"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "turing:",
			},
		},
		Server: ServerConfig{
			Addr:        ":8080",
			SessionIdle: "15m",
			MaxSessions: 1000,
		},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// If path is DefaultPath and the file does not exist, the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Validate checks enumerated fields and durations.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative")
	}
	if _, err := c.Store.Redis.Expiry(); err != nil {
		return err
	}
	if _, err := c.Server.IdleTimeout(); err != nil {
		return err
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must not be negative")
	}
	return nil
}

// IdleTimeout parses SessionIdle.
func (s ServerConfig) IdleTimeout() (time.Duration, error) {
	if s.SessionIdle == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.SessionIdle)
	if err != nil {
		return 0, fmt.Errorf("invalid session_idle %q: %w", s.SessionIdle, err)
	}
	return d, nil
}

// Expiry parses TTL.
func (r RedisConfig) Expiry() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl %q: %w", r.TTL, err)
	}
	return d, nil
}
