// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/postwise/config.yaml",
	"/etc/postwise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Host:            "0.0.0.0",
			Timeout:         60 * time.Second, // cultural analysis alone may take 30s
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Instagram: InstagramConfig{
			GraphURL:   "https://graph.facebook.com",
			APIVersion: "v21.0",
			Timeout:    10 * time.Second,
			RateLimit:  5,
			RateBurst:  5,
			MaxRetries: 3,
		},
		Gemini: GeminiConfig{
			Endpoint:  "https://generativelanguage.googleapis.com",
			Model:     "gemini-2.0-flash",
			Timeout:   30 * time.Second,
			RateLimit: 2,
			RateBurst: 2,
		},
		BestTime: BestTimeConfig{
			EngagementWeight: 50,
			CulturalWeight:   30,
			HistoricalWeight: 20,
			MaxDays:          3,
			SummaryDays:      2,
			MediaLimit:       50,
			TopHours:         3,
			TopDays:          3,
			AdapterTimeout:   10 * time.Second,
			CulturalTimeout:  30 * time.Second,
		},
		Warehouse: WarehouseConfig{
			Enabled:      true,
			Path:         "",
			MaxMemory:    "512MB",
			Threads:      0,
			LookbackDays: 30,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "",
			TTL:     6 * time.Hour,
		},
		Events: EventsConfig{
			Mode:                 "memory",
			URL:                  "nats://127.0.0.1:4222",
			StoreDir:             "/data/nats/jetstream",
			Host:                 "127.0.0.1",
			Port:                 4222,
			SubscribersCount:     2,
			DurablePrefix:        "postwise",
			QueueGroup:           "postwise-workers",
			RetryCount:           3,
			RetryInitialInterval: 100 * time.Millisecond,
			CloseTimeout:         30 * time.Second,
		},
		Security: SecurityConfig{
			AuthMode:           "none",
			SessionTimeout:     24 * time.Hour,
			CORSOrigins:        []string{"http://localhost:3000", "http://127.0.0.1:3000"},
			RateLimitDisabled:  false,
			AnalyzeRateLimit:   30,
			AnalyticsRateLimit: 300,
			HealthRateLimit:    1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// INSTAGRAM_ACCESS_TOKEN -> instagram.access_token
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH when it exists, otherwise the first
// existing entry of DefaultConfigPaths, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"port":             "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Instagram Graph API
	"instagram_access_token":        "instagram.access_token",
	"instagram_business_account_id": "instagram.business_account_id",
	"instagram_graph_url":           "instagram.graph_url",
	"instagram_api_version":         "instagram.api_version",
	"instagram_timeout":             "instagram.timeout",
	"instagram_rate_limit":          "instagram.rate_limit",

	// Gemini
	"google_api_key":    "gemini.api_key",
	"gemini_api_key":    "gemini.api_key",
	"gemini_endpoint":   "gemini.endpoint",
	"gemini_model":      "gemini.model",
	"gemini_timeout":    "gemini.timeout",
	"gemini_rate_limit": "gemini.rate_limit",

	// Best-time aggregation
	"besttime_engagement_weight": "besttime.engagement_weight",
	"besttime_cultural_weight":   "besttime.cultural_weight",
	"besttime_historical_weight": "besttime.historical_weight",
	"besttime_media_limit":       "besttime.media_limit",
	"besttime_adapter_timeout":   "besttime.adapter_timeout",
	"besttime_cultural_timeout":  "besttime.cultural_timeout",

	// Warehouse
	"warehouse_enabled":       "warehouse.enabled",
	"duckdb_path":             "warehouse.path",
	"duckdb_max_memory":       "warehouse.max_memory",
	"duckdb_threads":          "warehouse.threads",
	"warehouse_lookback_days": "warehouse.lookback_days",

	// Generative cache
	"cache_enabled": "cache.enabled",
	"cache_path":    "cache.path",
	"cache_ttl":     "cache.ttl",

	// Events
	"events_mode":            "events.mode",
	"nats_url":               "events.url",
	"nats_store_dir":         "events.store_dir",
	"nats_host":              "events.host",
	"nats_port":              "events.port",
	"nats_subscribers_count": "events.subscribers_count",

	// Security
	"auth_mode":            "security.auth_mode",
	"jwt_secret":           "security.jwt_secret",
	"session_timeout":      "security.session_timeout",
	"cors_origins":         "security.cors_origins",
	"rate_limit_disabled":  "security.rate_limit_disabled",
	"analyze_rate_limit":   "security.analyze_rate_limit",
	"analytics_rate_limit": "security.analytics_rate_limit",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// variables never reach the config.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
