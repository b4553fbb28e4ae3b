// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Instagram.Configured() {
		t.Error("Instagram should not be configured by default")
	}
	if cfg.Instagram.APIVersion != "v21.0" {
		t.Errorf("Instagram.APIVersion = %q, want v21.0", cfg.Instagram.APIVersion)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}

	b := cfg.BestTime
	if b.EngagementWeight != 50 || b.CulturalWeight != 30 || b.HistoricalWeight != 20 {
		t.Errorf("weights = %d/%d/%d, want 50/30/20", b.EngagementWeight, b.CulturalWeight, b.HistoricalWeight)
	}
	if b.AdapterTimeout != 10*time.Second || b.CulturalTimeout != 30*time.Second {
		t.Errorf("timeouts = %v/%v, want 10s/30s", b.AdapterTimeout, b.CulturalTimeout)
	}
	if b.MediaLimit != 50 {
		t.Errorf("MediaLimit = %d, want 50", b.MediaLimit)
	}

	if cfg.Events.Mode != "memory" {
		t.Errorf("Events.Mode = %q, want memory", cfg.Events.Mode)
	}
	if cfg.Cache.TTL != 6*time.Hour {
		t.Errorf("Cache.TTL = %v, want 6h", cfg.Cache.TTL)
	}
	wantOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "tok")
	t.Setenv("INSTAGRAM_BUSINESS_ACCOUNT_ID", "1784")
	t.Setenv("GOOGLE_API_KEY", "gkey")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("BESTTIME_CULTURAL_TIMEOUT", "45s")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if !cfg.Instagram.Configured() {
		t.Error("expected Instagram to be configured from env")
	}
	if cfg.Gemini.APIKey != "gkey" {
		t.Errorf("Gemini.APIKey = %q, want gkey", cfg.Gemini.APIKey)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.BestTime.CulturalTimeout != 45*time.Second {
		t.Errorf("CulturalTimeout = %v, want 45s", cfg.BestTime.CulturalTimeout)
	}
	want := []string{"https://shop.example.com", "https://admin.example.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 8100
besttime:
  engagement_weight: 60
  cultural_weight: 25
  historical_weight: 15
events:
  mode: disabled
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "8200")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	// env wins over file
	if cfg.Server.Port != 8200 {
		t.Errorf("Server.Port = %d, want 8200", cfg.Server.Port)
	}
	if cfg.BestTime.EngagementWeight != 60 || cfg.BestTime.HistoricalWeight != 15 {
		t.Errorf("weights not loaded from file: %+v", cfg.BestTime)
	}
	if cfg.Events.Mode != "disabled" {
		t.Errorf("Events.Mode = %q, want disabled", cfg.Events.Mode)
	}
	// untouched defaults survive
	if cfg.BestTime.MediaLimit != 50 {
		t.Errorf("MediaLimit = %d, want default 50", cfg.BestTime.MediaLimit)
	}
}

func TestLoadWithKoanf_InvalidFails(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EVENTS_MODE", "kafka")

	_, err := LoadWithKoanf()
	if err == nil || !strings.Contains(err.Error(), "EVENTS_MODE") {
		t.Errorf("expected EVENTS_MODE validation error, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"INSTAGRAM_ACCESS_TOKEN": "instagram.access_token",
		"GEMINI_API_KEY":         "gemini.api_key",
		"GOOGLE_API_KEY":         "gemini.api_key",
		"DUCKDB_PATH":            "warehouse.path",
		"HOME":                   "",
		"PATH":                   "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
