// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package events

import (
	"context"

	"github.com/tomtom215/postwise/internal/warehouse"
)

// Direct is the Emitter used when the bus is disabled. It writes events
// straight to the recorder on the caller's goroutine.
type Direct struct {
	rec Recorder
}

// NewDirect creates a Direct emitter. rec may be nil, in which case
// events are dropped.
func NewDirect(rec Recorder) *Direct {
	return &Direct{rec: rec}
}

// InteractionTracked records the interaction.
func (d *Direct) InteractionTracked(ctx context.Context, in *warehouse.Interaction) error {
	if d.rec == nil {
		return nil
	}
	return d.rec.RecordInteraction(ctx, in)
}

// RecommendationGenerated records the recommendation.
func (d *Direct) RecommendationGenerated(ctx context.Context, ev *RecommendationGenerated) error {
	if d.rec == nil {
		return nil
	}
	_, err := d.rec.RecordRecommendation(ctx, ev.ID, &ev.Recommendation)
	return err
}
