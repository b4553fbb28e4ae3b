// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"context"
	"time"

	"github.com/tomtom215/postwise/internal/besttime"
	"github.com/tomtom215/postwise/internal/events"
	"github.com/tomtom215/postwise/internal/warehouse"
)

// Analyzer produces best-time recommendations.
type Analyzer interface {
	Analyze(ctx context.Context, productName, category string, keywords, hashtags []string) besttime.Recommendation
}

// Publisher publishes an image post. *instagram.Client satisfies it.
type Publisher interface {
	Configured() bool
	Publish(ctx context.Context, imageURL, caption string) (string, error)
}

// InsightsStore serves read-side analytics. *warehouse.DB satisfies it.
type InsightsStore interface {
	Timing(ctx context.Context, artisanID string) (*warehouse.TimingInsights, error)
	RecentRecommendations(ctx context.Context, limit int) ([]warehouse.StoredRecommendation, error)
	Ping(ctx context.Context) error
}

// Deps holds the collaborators of a Handler. Publisher and Store may be
// nil; Events defaults to an emitter that drops everything.
type Deps struct {
	Analyzer         Analyzer
	Publisher        Publisher
	Store            InsightsStore
	Events           events.Emitter
	GeminiConfigured bool
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_besttime.go: analysis, sample, provider health, recent
//   - handlers_analytics.go: interaction tracking and timing insights
//   - handlers_instagram.go: publishing
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	analyzer         Analyzer
	publisher        Publisher
	store            InsightsStore
	events           events.Emitter
	geminiConfigured bool
	startTime        time.Time
	now              func() time.Time
}

// NewHandler creates an API handler.
func NewHandler(deps Deps) *Handler {
	emitter := deps.Events
	if emitter == nil {
		emitter = events.NewDirect(nil)
	}

	return &Handler{
		analyzer:         deps.Analyzer,
		publisher:        deps.Publisher,
		store:            deps.Store,
		events:           emitter,
		geminiConfigured: deps.GeminiConfigured,
		startTime:        time.Now(),
		now:              time.Now,
	}
}
