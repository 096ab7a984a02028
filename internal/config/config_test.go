package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HR_PORT", "DB_DSN", "STORE_DRIVER", "DB_MIGRATE", "TOKEN_TTL_SECONDS", "LOG_LEVEL", "RATE_LIMIT_PER_MIN", "ACTIVITY_EXCHANGE", "SESSION_LIFETIME_SECONDS", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.StoreDriver != "postgres" {
		t.Fatalf("expected postgres driver, got %q", cfg.StoreDriver)
	}
	if cfg.Migrate {
		t.Fatalf("expected migrations off by default")
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("expected 12h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.SessionLifetime != 7*24*time.Hour || cfg.TrustProxy {
		t.Fatalf("expected 7d sessions and untrusted proxy headers, got %v %v", cfg.SessionLifetime, cfg.TrustProxy)
	}
	if cfg.RateLimitPerMinute != 120 || cfg.ActivityExchange != "hr.activity" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HR_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("DB_MIGRATE", "true")
	t.Setenv("TOKEN_TTL_SECONDS", "60")
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")
	t.Setenv("SESSION_LIFETIME_SECONDS", "3600")
	t.Setenv("TRUST_PROXY", "true")
	cfg := Load()
	if cfg.Port != "9090" || cfg.StoreDriver != "memory" || !cfg.Migrate {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TokenTTL != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", cfg.TokenTTL)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Fatalf("expected fallback on invalid int, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.SessionLifetime != time.Hour || !cfg.TrustProxy {
		t.Fatalf("unexpected session settings: %v %v", cfg.SessionLifetime, cfg.TrustProxy)
	}
}
