// Package config loads the dashboard server configuration from defaults, an
// optional YAML file and BOTDASH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "BOTDASH"

// ServerConfig holds configuration for the botdash server.
type ServerConfig struct {
	Addr           string        `yaml:"addr" envconfig:"ADDR"`                       // Listen address (default ":8080")
	LogLevel       string        `yaml:"log_level" envconfig:"LOG_LEVEL"`             // debug, info, warn, error
	LogFormat      string        `yaml:"log_format" envconfig:"LOG_FORMAT"`           // text, json
	BackendURL     string        `yaml:"backend_url" envconfig:"BACKEND_URL"`         // Base URL of the REST backend
	BackendTimeout time.Duration `yaml:"backend_timeout" envconfig:"BACKEND_TIMEOUT"` // 0 means no timeout
	PageSize       int           `yaml:"page_size" envconfig:"PAGE_SIZE"`
	SecureCookies  bool          `yaml:"secure_cookies" envconfig:"SECURE_COOKIES"`
	StaticDir      string        `yaml:"static_dir" envconfig:"STATIC_DIR"`
	LandingPath    string        `yaml:"landing_path" envconfig:"LANDING_PATH"`
	Metrics        bool          `yaml:"metrics" envconfig:"METRICS"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   "text",
		BackendURL:  "http://localhost:3001",
		PageSize:    50,
		StaticDir:   "ui/assets",
		LandingPath: "/bots",
		Metrics:     true,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped when
// path is empty) and then the environment.
func Load(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

// Validate reports the first setting the server cannot start with.
func (c ServerConfig) Validate() error {
	if c.BackendURL == "" {
		return errors.New("backend url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("backend url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("backend url %q must be absolute", c.BackendURL)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("backend timeout must not be negative, got %s", c.BackendTimeout)
	}
	if !strings.HasPrefix(c.LandingPath, "/") || strings.HasPrefix(c.LandingPath, "//") {
		return fmt.Errorf("landing path %q must be a local path", c.LandingPath)
	}
	return nil
}
