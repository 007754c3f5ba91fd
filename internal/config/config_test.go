package config

import (
	"testing"
	"time"

	"github.com/fieldgames/domination/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %q, want %q", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.CaptureBonusPoints != 100 {
		t.Fatalf("CaptureBonusPoints = %d, want 100", cfg.CaptureBonusPoints)
	}
	if cfg.LiveRefreshInterval != 10*time.Second {
		t.Fatalf("LiveRefreshInterval = %s, want 10s", cfg.LiveRefreshInterval)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CAPTURE_BONUS_POINTS", "250")
	t.Setenv("LIVE_REFRESH_INTERVAL", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.AppEnv != EnvProd {
		t.Fatalf("AppEnv = %q, want %q", cfg.AppEnv, EnvProd)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.CaptureBonusPoints != 250 {
		t.Fatalf("CaptureBonusPoints = %d, want 250", cfg.CaptureBonusPoints)
	}
	if cfg.LiveRefreshInterval != 5*time.Second {
		t.Fatalf("LiveRefreshInterval = %s, want 5s", cfg.LiveRefreshInterval)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != "https://a.example" {
		t.Fatalf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CAPTURE_BONUS_POINTS", "not-a-number")
	t.Setenv("LIVE_REFRESH_INTERVAL", "sometimes")

	cfg := Load()

	if cfg.CaptureBonusPoints != 100 {
		t.Fatalf("CaptureBonusPoints = %d, want fallback 100", cfg.CaptureBonusPoints)
	}
	if cfg.LiveRefreshInterval != 10*time.Second {
		t.Fatalf("LiveRefreshInterval = %s, want fallback 10s", cfg.LiveRefreshInterval)
	}
}
