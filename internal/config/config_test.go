package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:4000" {
		t.Fatalf("unexpected default base url: %q", cfg.API.BaseURL)
	}
	if got := cfg.APITimeout(); got != 10*time.Second {
		t.Fatalf("unexpected default timeout: %v", got)
	}
	if got := cfg.CacheTTL(); got != 0 {
		t.Fatalf("default cache ttl should be session-lifetime (0); got %v", got)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.Log.Level)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SHIFTDECK_API_URL", "http://scheduler.internal:8080")
	t.Setenv("SHIFTDECK_API_TIMEOUT", "3")
	t.Setenv("SHIFTDECK_CACHE_TTL_MIN", "15")
	t.Setenv("SHIFTDECK_DRAFT_DISABLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://scheduler.internal:8080" {
		t.Fatalf("base url not read: %q", cfg.API.BaseURL)
	}
	if got := cfg.APITimeout(); got != 3*time.Second {
		t.Fatalf("timeout not read: %v", got)
	}
	if got := cfg.CacheTTL(); got != 15*time.Minute {
		t.Fatalf("ttl not read: %v", got)
	}
	if got := cfg.DraftPath(); got != "" {
		t.Fatalf("disabled drafts should resolve an empty path; got %q", got)
	}
}

func TestExplicitPathsWin(t *testing.T) {
	t.Setenv("SHIFTDECK_LOG_FILE", "/tmp/shiftdeck-test.log")
	t.Setenv("SHIFTDECK_DRAFT_DB", "/tmp/shiftdeck-test.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.LogFile(); got != "/tmp/shiftdeck-test.log" {
		t.Fatalf("log file override ignored: %q", got)
	}
	if got := cfg.DraftPath(); got != "/tmp/shiftdeck-test.db" {
		t.Fatalf("draft path override ignored: %q", got)
	}
}
