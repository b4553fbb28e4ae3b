// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package warehouse

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/postwise/internal/besttime"
)

const (
	performanceTopHours = 2
	performanceTopDays  = 2
)

// slotCounts is one (weekday, hour) bucket of interactions.
type slotCounts struct {
	Weekday      time.Weekday
	Hour         int
	Interactions int64
	Clicks       int64
	Inquiries    int64
}

// Performance reports where a category's clicks concentrated over the
// lookback window. It returns besttime.ErrNoHistory when the category has
// no interactions in the window.
func (db *DB) Performance(ctx context.Context, category string) (perf *besttime.Performance, err error) {
	start := time.Now()
	defer func() { observe("performance", start, err) }()

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	since := db.now().UTC().Add(-db.lookback)

	var products, views, engaged int64
	err = db.conn.QueryRowContext(ctx, `
		SELECT
			COUNT(DISTINCT product_id),
			COUNT(*) FILTER (WHERE action_type = 'view'),
			COUNT(*) FILTER (WHERE action_type IN ('click', 'inquiry', 'purchase'))
		FROM interactions
		WHERE category = ? AND occurred_at >= ?`,
		category, since).Scan(&products, &views, &engaged)
	if err != nil {
		return nil, fmt.Errorf("failed to query category stats: %w", err)
	}
	if products == 0 {
		return nil, fmt.Errorf("category %q: %w", category, besttime.ErrNoHistory)
	}

	slots, err := db.querySlots(ctx, "category = ?", category, since)
	if err != nil {
		return nil, err
	}

	return &besttime.Performance{
		BestTimes: bestHourWindows(slots, performanceTopHours),
		BestDays:  bestDays(slots, performanceTopDays),
		Stats: map[string]float64{
			"avg_views":        float64(views) / float64(products),
			"avg_engagement":   float64(engaged) / float64(products),
			"historical_posts": float64(products),
		},
	}, nil
}

// querySlots groups interactions matching where (one bound argument) by
// UTC weekday and hour.
func (db *DB) querySlots(ctx context.Context, where string, arg any, since time.Time) ([]slotCounts, error) {
	//nolint:gosec // where is one of a fixed set of column predicates
	query := fmt.Sprintf(`
		SELECT
			dayofweek(occurred_at) AS dow,
			hour(occurred_at) AS hr,
			COUNT(*) AS interactions,
			COUNT(*) FILTER (WHERE action_type = 'click') AS clicks,
			COUNT(*) FILTER (WHERE action_type = 'inquiry') AS inquiries
		FROM interactions
		WHERE %s AND occurred_at >= ?
		GROUP BY dow, hr`, where)

	rows, err := db.conn.QueryContext(ctx, query, arg, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query time slots: %w", err)
	}
	defer rows.Close()

	var slots []slotCounts
	for rows.Next() {
		var s slotCounts
		var dow, hr int64
		if err := rows.Scan(&dow, &hr, &s.Interactions, &s.Clicks, &s.Inquiries); err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		s.Weekday = time.Weekday(dow)
		s.Hour = int(hr)
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate time slots: %w", err)
	}

	sortSlots(slots)
	return slots, nil
}

// sortSlots orders by clicks, then interactions, then canonical weekday
// and hour.
func sortSlots(slots []slotCounts) {
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Clicks != b.Clicks {
			return a.Clicks > b.Clicks
		}
		if a.Interactions != b.Interactions {
			return a.Interactions > b.Interactions
		}
		if a.Weekday != b.Weekday {
			return weekdayIndex(a.Weekday) < weekdayIndex(b.Weekday)
		}
		return a.Hour < b.Hour
	})
}

// bestHourWindows sums clicks per hour across weekdays and formats the top
// n hours as two-hour windows.
func bestHourWindows(slots []slotCounts, n int) []string {
	type hourTotal struct {
		hour                 int
		clicks, interactions int64
	}
	totals := make(map[int]*hourTotal)
	for _, s := range slots {
		t, ok := totals[s.Hour]
		if !ok {
			t = &hourTotal{hour: s.Hour}
			totals[s.Hour] = t
		}
		t.clicks += s.Clicks
		t.interactions += s.Interactions
	}

	ranked := make([]*hourTotal, 0, len(totals))
	for _, t := range totals {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.clicks != b.clicks {
			return a.clicks > b.clicks
		}
		if a.interactions != b.interactions {
			return a.interactions > b.interactions
		}
		return a.hour < b.hour
	})

	out := make([]string, 0, n)
	for _, t := range ranked[:min(n, len(ranked))] {
		out = append(out, formatWindow(t.hour))
	}
	return out
}

// bestDays sums clicks per weekday and returns the top n, ties in
// Monday..Sunday order.
func bestDays(slots []slotCounts, n int) []string {
	clicks := make(map[time.Weekday]int64)
	seen := make(map[time.Weekday]bool)
	for _, s := range slots {
		clicks[s.Weekday] += s.Clicks
		seen[s.Weekday] = true
	}

	days := make([]time.Weekday, 0, len(seen))
	for _, name := range besttime.Weekdays {
		d := weekdayByName[name]
		if seen[d] {
			days = append(days, d)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return clicks[days[i]] > clicks[days[j]]
	})

	out := make([]string, 0, n)
	for _, d := range days[:min(n, len(days))] {
		out = append(out, d.String())
	}
	return out
}

// formatWindow renders a two-hour window starting at hour, e.g. "19:00-21:00".
func formatWindow(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, (hour+2)%24)
}

var weekdayByName = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// weekdayIndex places Monday first and Sunday last.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
