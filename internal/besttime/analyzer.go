// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/postwise/internal/logging"
	"github.com/tomtom215/postwise/internal/metrics"
)

// Analyzer is the entry point for best-time analysis. It gathers the three
// signals concurrently, each under its own timeout, and aggregates them.
//
// Thread Safety: Analyzer holds no per-request state and is safe for
// concurrent use.
type Analyzer struct {
	cfg        *Config
	engagement *EngagementAdapter
	cultural   *CulturalAdapter
	historical *HistoricalAdapter
	aggregator *Aggregator
	logger     zerolog.Logger
}

// NewAnalyzer wires an Analyzer. Any collaborator may be nil; its signal
// then always uses the documented default.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAnalyzer(cfg *Config, media MediaSource, gen TextGenerator, store PerformanceStore, logger zerolog.Logger) (*Analyzer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid besttime config: %w", err)
	}

	logger = logger.With().Str("component", "besttime").Logger()

	return &Analyzer{
		cfg:        cfg,
		engagement: NewEngagementAdapter(media, cfg, logger.With().Str("source", SourceEngagement).Logger()),
		cultural:   NewCulturalAdapter(gen, logger.With().Str("source", SourceCultural).Logger()),
		historical: NewHistoricalAdapter(store, logger.With().Str("source", SourceHistorical).Logger()),
		aggregator: NewAggregator(cfg),
		logger:     logger,
	}, nil
}

// Analyze produces a Recommendation for a product. A nil hashtags slice
// defaults to keywords. Analyze never returns an error; failures degrade to
// fallback signals, and an aggregation failure yields an error
// Recommendation.
func (a *Analyzer) Analyze(ctx context.Context, productName, category string, keywords, hashtags []string) Recommendation {
	q := Query{
		ProductName: productName,
		Category:    category,
		Keywords:    keywords,
		Hashtags:    hashtags,
	}
	if q.Hashtags == nil {
		q.Hashtags = keywords
	}

	logger := logging.CtxWith(ctx).
		Str("component", "besttime").
		Str("product", productName).
		Str("category", category).
		Logger()
	start := time.Now()

	e, c, h := a.gatherSignals(ctx, q)
	rec := a.aggregator.Combine(productName, category, e, c, h)

	metrics.RecordAnalysis(rec.Failed())
	logger.Info().
		Str("best_time", rec.BestTimeToPost).
		Str("engagement", string(e.Provenance)).
		Str("cultural", string(c.Provenance)).
		Str("historical", string(h.Provenance)).
		Dur("duration", time.Since(start)).
		Bool("failed", rec.Failed()).
		Msg("best-time analysis complete")

	return rec
}

// gatherSignals runs the three adapters in parallel.
//
//nolint:gocritic // q passed by value for immutability
func (a *Analyzer) gatherSignals(ctx context.Context, q Query) (EngagementSignal, CulturalSignal, HistoricalSignal) {
	var (
		e  EngagementSignal
		c  CulturalSignal
		h  HistoricalSignal
		wg sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		e = runAdapter(ctx, SourceEngagement, a.cfg.AdapterTimeout,
			func(ctx context.Context) EngagementSignal { return a.engagement.Fetch(ctx, q) },
			FallbackEngagementSignal,
			func(s EngagementSignal) Provenance { return s.Provenance })
	}()
	go func() {
		defer wg.Done()
		c = runAdapter(ctx, SourceCultural, a.cfg.CulturalTimeout,
			func(ctx context.Context) CulturalSignal { return a.cultural.Fetch(ctx, q) },
			func(err error) CulturalSignal { return FallbackCulturalSignal(q.Category, err) },
			func(s CulturalSignal) Provenance { return s.Provenance })
	}()
	go func() {
		defer wg.Done()
		h = runAdapter(ctx, SourceHistorical, a.cfg.AdapterTimeout,
			func(ctx context.Context) HistoricalSignal { return a.historical.Fetch(ctx, q) },
			func(error) HistoricalSignal { return MockHistoricalSignal() },
			func(s HistoricalSignal) Provenance { return s.Provenance })
	}()
	wg.Wait()

	return e, c, h
}

// runAdapter calls fetch under a timeout. If the deadline passes first, or
// fetch panics, the fallback is returned instead. A fetch still running
// after the deadline is abandoned; its context is already cancelled.
func runAdapter[T any](
	ctx context.Context,
	source string,
	timeout time.Duration,
	fetch func(context.Context) T,
	fallback func(error) T,
	provenance func(T) Provenance,
) T {
	start := time.Now()
	adapterCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan T, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fallback(fmt.Errorf("%s adapter panic: %v", source, r))
			}
		}()
		done <- fetch(adapterCtx)
	}()

	var result T
	select {
	case result = <-done:
	case <-adapterCtx.Done():
		logging.Ctx(ctx).Warn().
			Str("source", source).
			Dur("timeout", timeout).
			Msg("signal adapter timed out, using fallback")
		result = fallback(fmt.Errorf("%s adapter: %w", source, adapterCtx.Err()))
	}

	metrics.RecordSignal(source, string(provenance(result)), time.Since(start))
	return result
}
