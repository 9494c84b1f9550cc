package app

import (
	"testing"
	"time"

	_ "github.com/dukaan-pos/dukaan-pos/internal/testing/guard"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("addr = %s", cfg.AppAddr)
	}
	if cfg.AnalyticsCacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %s", cfg.AnalyticsCacheTTL)
	}
	if cfg.TenantTimezone != "Asia/Kolkata" {
		t.Fatalf("timezone = %s", cfg.TenantTimezone)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9999")
	t.Setenv("ANALYTICS_CACHE_TTL", "90s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppAddr != ":9999" {
		t.Fatalf("addr = %s", cfg.AppAddr)
	}
	if cfg.AnalyticsCacheTTL != 90*time.Second {
		t.Fatalf("cache ttl = %s", cfg.AnalyticsCacheTTL)
	}
}

func TestConfigLocation(t *testing.T) {
	cfg := &Config{TenantTimezone: "Asia/Kolkata"}
	loc := cfg.Location()
	if loc.String() != "Asia/Kolkata" {
		t.Fatalf("location = %s", loc)
	}

	cfg = &Config{TenantTimezone: "Not/AZone"}
	if cfg.Location() != time.Local {
		t.Fatal("bad zone should fall back to host zone")
	}
}

func TestInTestModeSetByGuard(t *testing.T) {
	RefreshTestMode()
	if !InTestMode() {
		t.Fatal("guard import should enable test mode")
	}
}
