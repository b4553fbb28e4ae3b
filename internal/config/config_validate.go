// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package config

import (
	"fmt"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validEventModes = map[string]bool{
	"memory": true, "nats": true, "embedded": true, "disabled": true,
}

// minJWTSecretLength is the minimum HS256 secret length accepted in jwt mode.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateBestTime(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

// validateBestTime validates aggregation weights, limits and timeouts
func (c *Config) validateBestTime() error {
	b := &c.BestTime
	if b.EngagementWeight < 0 || b.CulturalWeight < 0 || b.HistoricalWeight < 0 {
		return fmt.Errorf("besttime weights must be non-negative, got %d/%d/%d",
			b.EngagementWeight, b.CulturalWeight, b.HistoricalWeight)
	}
	if b.EngagementWeight+b.CulturalWeight+b.HistoricalWeight == 0 {
		return fmt.Errorf("besttime weights must not all be zero")
	}
	if b.MaxDays < 1 || b.MaxDays > 7 {
		return fmt.Errorf("besttime.max_days must be in [1, 7], got %d", b.MaxDays)
	}
	if b.SummaryDays < 1 || b.SummaryDays > b.MaxDays {
		return fmt.Errorf("besttime.summary_days must be in [1, max_days], got %d", b.SummaryDays)
	}
	if b.MediaLimit < 1 || b.MediaLimit > 100 {
		return fmt.Errorf("BESTTIME_MEDIA_LIMIT must be in [1, 100], got %d", b.MediaLimit)
	}
	if b.TopHours < 1 || b.TopDays < 1 {
		return fmt.Errorf("besttime.top_hours and besttime.top_days must be positive")
	}
	if b.AdapterTimeout <= 0 || b.CulturalTimeout <= 0 {
		return fmt.Errorf("besttime adapter timeouts must be positive")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when CACHE_ENABLED=true, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !validEventModes[c.Events.Mode] {
		return fmt.Errorf("EVENTS_MODE must be one of: memory, nats, embedded, disabled")
	}
	if c.Events.Mode == "nats" && c.Events.URL == "" {
		return fmt.Errorf("NATS_URL is required when EVENTS_MODE=nats")
	}
	if c.Events.Mode == "embedded" && c.Events.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when EVENTS_MODE=embedded")
	}
	if c.Events.SubscribersCount < 1 {
		return fmt.Errorf("NATS_SUBSCRIBERS_COUNT must be positive, got %d", c.Events.SubscribersCount)
	}
	return nil
}

// validateSecurity validates authentication settings
func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "none":
	case "jwt":
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when AUTH_MODE=jwt", minJWTSecretLength)
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
