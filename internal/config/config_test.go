package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "platform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Environment != "development" {
		t.Fatalf("environment = %s", cfg.Environment)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr = %s", cfg.Server.Addr)
	}
	if cfg.RateLimit.Limit != 100 || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("rate limit defaults = %d/%s", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Fatalf("session ttl = %s", cfg.Auth.SessionTTL)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
ratelimit:
  limit: 5
  window: 30s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr = %s", cfg.Server.Addr)
	}
	if cfg.RateLimit.Limit != 5 || cfg.RateLimit.Window != 30*time.Second {
		t.Fatalf("rate limit = %d/%s", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}
	// Untouched keys keep their defaults.
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Fatalf("read timeout = %s", cfg.Server.ReadTimeout)
	}
}

func TestLoadEnvironmentOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
`)
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("addr = %s, want env value", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level = %s", cfg.Logging.Level)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestProductionRequiresAuthSecret(t *testing.T) {
	path := writeConfig(t, `environment: production`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error without auth secret")
	}

	t.Setenv("AUTH_SECRET", "s3cret")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Production() {
		t.Fatal("environment should be production")
	}
}

func TestNegativeRateLimitRejected(t *testing.T) {
	path := writeConfig(t, `
ratelimit:
  limit: -1
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}
