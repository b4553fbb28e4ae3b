// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// SourceHistorical names the historical signal in logs and metrics.
const SourceHistorical = "historical"

// PerformanceStore reports recorded performance for a product category.
// Implementations return ErrNoHistory when nothing has been recorded.
type PerformanceStore interface {
	Performance(ctx context.Context, category string) (*Performance, error)
}

// HistoricalAdapter reads recorded category performance from a store.
type HistoricalAdapter struct {
	store  PerformanceStore
	logger zerolog.Logger
}

// NewHistoricalAdapter creates a historical adapter. store may be nil, in
// which case the mock signal is always returned.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHistoricalAdapter(store PerformanceStore, logger zerolog.Logger) *HistoricalAdapter {
	return &HistoricalAdapter{store: store, logger: logger}
}

// Fetch returns the historical signal for q. It never fails.
func (a *HistoricalAdapter) Fetch(ctx context.Context, q Query) HistoricalSignal {
	if a.store == nil {
		return MockHistoricalSignal()
	}

	perf, err := a.store.Performance(ctx, q.Category)
	switch {
	case errors.Is(err, ErrNoHistory):
		a.logger.Debug().Str("category", q.Category).Msg("no recorded history, using mock")
		return MockHistoricalSignal()
	case err != nil:
		a.logger.Warn().Err(err).Str("category", q.Category).Msg("performance query failed, using mock")
		return MockHistoricalSignal()
	case perf == nil || (len(perf.BestTimes) == 0 && len(perf.BestDays) == 0):
		return MockHistoricalSignal()
	}

	stats := perf.Stats
	if stats == nil {
		stats = map[string]float64{}
	}
	return HistoricalSignal{
		BestTimes:  perf.BestTimes,
		BestDays:   perf.BestDays,
		Stats:      stats,
		Source:     "warehouse",
		Provenance: ProvenanceRecorded,
	}
}

// MockHistoricalSignal is returned when no recorded history is available.
func MockHistoricalSignal() HistoricalSignal {
	return HistoricalSignal{
		BestTimes: []string{"19:00-21:00"},
		BestDays:  []string{"Saturday", "Sunday"},
		Stats: map[string]float64{
			"avg_views":        250,
			"avg_engagement":   45,
			"historical_posts": 0,
		},
		Source:     "mock_data",
		Provenance: ProvenanceMock,
	}
}
