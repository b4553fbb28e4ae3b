// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package config

import "time"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Instagram InstagramConfig `koanf:"instagram"`
	Gemini    GeminiConfig    `koanf:"gemini"`
	BestTime  BestTimeConfig  `koanf:"besttime"`
	Warehouse WarehouseConfig `koanf:"warehouse"`
	Cache     CacheConfig     `koanf:"cache"`
	Events    EventsConfig    `koanf:"events"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
}

// InstagramConfig holds Instagram Graph API credentials and client tuning.
//
// Environment Variables:
//   - INSTAGRAM_ACCESS_TOKEN: long-lived Graph API token
//   - INSTAGRAM_BUSINESS_ACCOUNT_ID: business account whose media is analysed
type InstagramConfig struct {
	AccessToken       string        `koanf:"access_token"`
	BusinessAccountID string        `koanf:"business_account_id"`
	GraphURL          string        `koanf:"graph_url"`
	APIVersion        string        `koanf:"api_version"`
	Timeout           time.Duration `koanf:"timeout"`
	RateLimit         float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst         int           `koanf:"rate_burst"`
	MaxRetries        int           `koanf:"max_retries"` // retries on HTTP 429
}

// Configured reports whether both Graph API credentials are set.
func (c *InstagramConfig) Configured() bool {
	return c.AccessToken != "" && c.BusinessAccountID != ""
}

// GeminiConfig holds generative model settings.
//
// Environment Variables:
//   - GOOGLE_API_KEY or GEMINI_API_KEY: API key
//   - GEMINI_MODEL: model name (default: gemini-2.0-flash)
type GeminiConfig struct {
	APIKey    string        `koanf:"api_key"`
	Endpoint  string        `koanf:"endpoint"`
	Model     string        `koanf:"model"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
	RateBurst int           `koanf:"rate_burst"`
}

// Configured reports whether an API key is set.
func (c *GeminiConfig) Configured() bool {
	return c.APIKey != ""
}

// BestTimeConfig holds the tunables of the best-time aggregation.
type BestTimeConfig struct {
	EngagementWeight int           `koanf:"engagement_weight"`
	CulturalWeight   int           `koanf:"cultural_weight"`
	HistoricalWeight int           `koanf:"historical_weight"`
	MaxDays          int           `koanf:"max_days"`
	SummaryDays      int           `koanf:"summary_days"`
	MediaLimit       int           `koanf:"media_limit"`
	TopHours         int           `koanf:"top_hours"`
	TopDays          int           `koanf:"top_days"`
	AdapterTimeout   time.Duration `koanf:"adapter_timeout"`
	CulturalTimeout  time.Duration `koanf:"cultural_timeout"`
}

// WarehouseConfig holds DuckDB analytics warehouse settings.
// An empty Path opens an in-memory database.
type WarehouseConfig struct {
	Enabled      bool   `koanf:"enabled"`
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // 0 = DuckDB default
	LookbackDays int    `koanf:"lookback_days"`
}

// CacheConfig holds the generative response cache settings.
// An empty Path runs Badger in memory.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	Path    string        `koanf:"path"`
	TTL     time.Duration `koanf:"ttl"`
}

// EventsConfig holds event bus settings.
//
// Mode selects the transport:
//   - memory: in-process gochannel pub/sub (default)
//   - nats: external NATS JetStream at URL
//   - embedded: in-process NATS server with JetStream stored in StoreDir
//   - disabled: events are dropped and interactions are written directly
type EventsConfig struct {
	Mode                 string        `koanf:"mode"`
	URL                  string        `koanf:"url"`
	StoreDir             string        `koanf:"store_dir"`
	Host                 string        `koanf:"host"`
	Port                 int           `koanf:"port"`
	SubscribersCount     int           `koanf:"subscribers_count"`
	DurablePrefix        string        `koanf:"durable_prefix"`
	QueueGroup           string        `koanf:"queue_group"`
	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`
}

// SecurityConfig holds authentication, CORS and rate limiting settings
type SecurityConfig struct {
	AuthMode           string        `koanf:"auth_mode"` // "none" or "jwt"
	JWTSecret          string        `koanf:"jwt_secret"`
	SessionTimeout     time.Duration `koanf:"session_timeout"`
	CORSOrigins        []string      `koanf:"cors_origins"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
	AnalyzeRateLimit   int           `koanf:"analyze_rate_limit"`   // requests per minute per IP
	AnalyticsRateLimit int           `koanf:"analytics_rate_limit"` // requests per minute per IP
	HealthRateLimit    int           `koanf:"health_rate_limit"`    // requests per minute per IP
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Caller bool   `koanf:"caller"`
}

// Load reads configuration using layered sources, in increasing priority:
//  1. Built-in defaults
//  2. Config file (config.yaml if present, or CONFIG_PATH)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
