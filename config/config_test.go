package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:8000" {
		t.Errorf("Expected default addr 0.0.0.0:8000, got %s", cfg.Server.Addr())
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected info level, got %s", cfg.Logging.Level)
	}
	if cfg.Batch.Enabled() {
		t.Error("batch should be disabled by default")
	}
}

func TestLoad_YAMLWithEnvExpansion(t *testing.T) {
	clearEnv(t)
	t.Setenv("BMR_INBOX", "/tmp/inbox")

	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 5s
  shutdown_timeout: 2s
logging:
  level: debug
  format: json
batch:
  inbox_dir: ${BMR_INBOX}
  outbox_dir: /tmp/outbox
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:9090" {
		t.Errorf("Expected 127.0.0.1:9090, got %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read timeout 5s, got %s", cfg.Server.ReadTimeout)
	}
	// untouched keys keep their defaults
	if cfg.Server.WriteTimeout != 15*time.Second {
		t.Errorf("Expected default write timeout, got %s", cfg.Server.WriteTimeout)
	}
	if cfg.Batch.InboxDir != "/tmp/inbox" {
		t.Errorf("Expected expanded inbox dir, got %q", cfg.Batch.InboxDir)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected json format, got %s", cfg.Logging.Format)
	}
}

func TestLoad_EnvOverridesHostPort(t *testing.T) {
	t.Setenv("HOST", "localhost")
	t.Setenv("PORT", "7000")

	path := writeConfig(t, "server:\n  port: 9090\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr() != "localhost:7000" {
		t.Errorf("Expected localhost:7000, got %s", cfg.Server.Addr())
	}
}

func TestLoad_BadPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "PORT") {
		t.Fatalf("expected PORT parse error, got %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server: [unclosed")

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -time.Second }},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"outbox without inbox", func(c *Config) { c.Batch.OutboxDir = "/tmp/out" }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
