// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const timingTopSlots = 5

// festivalAdvice is always offered alongside data-driven advice.
const festivalAdvice = "2 weeks before festivals for promotional content"

// DefaultTimingAdvice is returned when an artisan has no recorded interactions.
var DefaultTimingAdvice = []string{
	"Post between 7-9 PM for maximum reach",
	"Thursdays and Fridays show 30% higher engagement",
	festivalAdvice,
}

// TimingSlot is one of an artisan's strongest (day, hour) buckets.
type TimingSlot struct {
	Day        string `json:"day"`
	Hour       int    `json:"hour"`
	Period     string `json:"period"`
	Engagement int64  `json:"engagement"`
}

// TimingInsights is posting advice derived from an artisan's interactions.
type TimingInsights struct {
	BestTiming     []string     `json:"best_timing"`
	DetailedTiming []TimingSlot `json:"detailed_timing"`
}

// Timing returns the artisan's top slots by clicks over the lookback window
// together with advice sentences.
func (db *DB) Timing(ctx context.Context, artisanID string) (ti *TimingInsights, err error) {
	start := time.Now()
	defer func() { observe("timing", start, err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	slots, err := db.querySlots(ctx, "artisan_id = ?", artisanID, db.now().UTC().Add(-db.lookback))
	if err != nil {
		return nil, err
	}
	return buildTimingInsights(slots), nil
}

// buildTimingInsights expects slots already ranked by sortSlots.
func buildTimingInsights(slots []slotCounts) *TimingInsights {
	top := slots[:min(timingTopSlots, len(slots))]
	if len(top) == 0 {
		return &TimingInsights{
			BestTiming:     append([]string(nil), DefaultTimingAdvice...),
			DetailedTiming: []TimingSlot{},
		}
	}

	detailed := make([]TimingSlot, 0, len(top))
	for _, s := range top {
		detailed = append(detailed, TimingSlot{
			Day:        s.Weekday.String(),
			Hour:       s.Hour,
			Period:     PeriodOf(s.Hour),
			Engagement: s.Clicks,
		})
	}

	first := top[0].Hour
	advice := []string{
		fmt.Sprintf("Post between %d:00-%d:00 for maximum reach", first, (first+2)%24),
	}
	if days := bestDays(top, 2); len(days) > 0 {
		advice = append(advice, strings.Join(days, " and ")+" show highest engagement")
	}
	advice = append(advice, festivalAdvice)

	return &TimingInsights{BestTiming: advice, DetailedTiming: detailed}
}

// PeriodOf names the part of day an hour falls in.
func PeriodOf(hour int) string {
	switch {
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 21:
		return "evening"
	default:
		return "night"
	}
}
