package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultServerConfig(t *testing.T) {
	cfg := DefaultServerConfig()
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
	if cfg.BackendTimeout != 0 {
		t.Errorf("BackendTimeout = %s, want none", cfg.BackendTimeout)
	}
	if cfg.LandingPath != "/bots" {
		t.Errorf("LandingPath = %q, want /bots", cfg.LandingPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "botdash.yaml")
	yml := "addr: \":9090\"\nbackend_url: https://api.example.com\npage_size: 25\nbackend_timeout: 5s\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOTDASH_PAGE_SIZE", "10")
	t.Setenv("BOTDASH_SECURE_COOKIES", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.BackendURL != "https://api.example.com" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.PageSize != 10 {
		t.Errorf("PageSize = %d, want env override 10", cfg.PageSize)
	}
	if cfg.BackendTimeout != 5*time.Second {
		t.Errorf("BackendTimeout = %s, want 5s", cfg.BackendTimeout)
	}
	if !cfg.SecureCookies {
		t.Error("SecureCookies should be set from the environment")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*ServerConfig)
	}{
		{"empty backend", func(c *ServerConfig) { c.BackendURL = "" }},
		{"relative backend", func(c *ServerConfig) { c.BackendURL = "/api" }},
		{"zero page size", func(c *ServerConfig) { c.PageSize = 0 }},
		{"negative timeout", func(c *ServerConfig) { c.BackendTimeout = -time.Second }},
		{"external landing", func(c *ServerConfig) { c.LandingPath = "//evil.example.com" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultServerConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
