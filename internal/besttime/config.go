// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"fmt"
	"time"

	"github.com/tomtom215/postwise/internal/config"
)

// Config contains the tunables of the analysis.
type Config struct {
	// Weights is the contribution of each signal to a day's score.
	Weights SourceWeights

	// MinDayScore is the score a day must strictly exceed to be recommended.
	MinDayScore int

	// MaxDays caps the number of recommended days.
	MaxDays int

	// SummaryDays is how many days appear in the best-time string.
	SummaryDays int

	// MediaLimit is how many recent posts the engagement adapter reads.
	MediaLimit int

	// TopHours and TopDays bound the engagement signal's peaks.
	TopHours int
	TopDays  int

	// RateDivisor scales the average interaction score into the
	// engagement rate.
	RateDivisor float64

	// AdapterTimeout bounds the engagement and historical adapters.
	AdapterTimeout time.Duration

	// CulturalTimeout bounds the generative cultural adapter.
	CulturalTimeout time.Duration

	// Defaults for the best-time string and improvement estimate.
	DefaultDays    string
	DefaultTime    string
	DefaultBoost   int
	DefaultRegions []string
}

// SourceWeights defines the day-score contribution of each signal.
type SourceWeights struct {
	Engagement int
	Cultural   int
	Historical int
}

// DefaultConfig returns the standard analysis configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: SourceWeights{
			Engagement: 50,
			Cultural:   30,
			Historical: 20,
		},
		MinDayScore:     0,
		MaxDays:         3,
		SummaryDays:     2,
		MediaLimit:      50,
		TopHours:        3,
		TopDays:         3,
		RateDivisor:     1000,
		AdapterTimeout:  10 * time.Second,
		CulturalTimeout: 30 * time.Second,
		DefaultDays:     "Friday-Sunday",
		DefaultTime:     "7:00pm-10:00pm",
		DefaultBoost:    50,
		DefaultRegions:  []string{"Maharashtra", "Gujarat"},
	}
}

// ConfigFrom builds an analysis configuration from the application config.
// Fields not exposed in the application config keep their defaults.
func ConfigFrom(app *config.BestTimeConfig) *Config {
	cfg := DefaultConfig()
	cfg.Weights = SourceWeights{
		Engagement: app.EngagementWeight,
		Cultural:   app.CulturalWeight,
		Historical: app.HistoricalWeight,
	}
	cfg.MaxDays = app.MaxDays
	cfg.SummaryDays = app.SummaryDays
	cfg.MediaLimit = app.MediaLimit
	cfg.TopHours = app.TopHours
	cfg.TopDays = app.TopDays
	cfg.AdapterTimeout = app.AdapterTimeout
	cfg.CulturalTimeout = app.CulturalTimeout
	return cfg
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Weights.Engagement < 0 || c.Weights.Cultural < 0 || c.Weights.Historical < 0 {
		return fmt.Errorf("weights must be non-negative, got %+v", c.Weights)
	}
	if c.MaxDays < 1 {
		return fmt.Errorf("max_days must be positive, got %d", c.MaxDays)
	}
	if c.SummaryDays < 1 {
		return fmt.Errorf("summary_days must be positive, got %d", c.SummaryDays)
	}
	if c.MediaLimit < 1 {
		return fmt.Errorf("media_limit must be positive, got %d", c.MediaLimit)
	}
	if c.TopHours < 1 || c.TopDays < 1 {
		return fmt.Errorf("top_hours and top_days must be positive, got %d/%d", c.TopHours, c.TopDays)
	}
	if c.RateDivisor <= 0 {
		return fmt.Errorf("rate_divisor must be positive, got %f", c.RateDivisor)
	}
	if c.AdapterTimeout <= 0 || c.CulturalTimeout <= 0 {
		return fmt.Errorf("adapter timeouts must be positive, got %v/%v", c.AdapterTimeout, c.CulturalTimeout)
	}
	return nil
}
