// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Aggregator merges the three signals into a Recommendation.
type Aggregator struct {
	cfg *Config
}

// NewAggregator creates an aggregator with the given configuration.
func NewAggregator(cfg *Config) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// DayScore is a weekday with its combined score.
type DayScore struct {
	Day   string
	Score int
}

// Combine merges the signals. It never panics: an unexpected failure is
// reported as an error Recommendation carrying only product and category.
//
//nolint:gocritic // signals are passed by value; they are read-only here
func (a *Aggregator) Combine(product, category string, e EngagementSignal, c CulturalSignal, h HistoricalSignal) (rec Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			rec = Recommendation{
				Product:  product,
				Category: category,
				Error:    fmt.Sprintf("aggregation failed: %v", r),
			}
		}
	}()

	ranked := a.RankDays(e, c, h)
	days := make([]string, len(ranked))
	for i, ds := range ranked {
		days[i] = ds.Day
	}

	regions := Dedupe(c.TargetStates)
	if len(regions) == 0 {
		regions = Dedupe(a.cfg.DefaultRegions)
	}

	return Recommendation{
		Product:             product,
		Category:            category,
		TargetRegions:       regions,
		BestTimeToPost:      a.FormatBestTime(days, UnionTimeSlots(e.PeakTimes, c.BestTimeSlots, h.BestTimes)),
		SeasonSpike:         Dedupe(c.SeasonSpike),
		Festivals:           Dedupe(c.Festivals),
		Reasoning:           c.Reasoning,
		ExpectedImprovement: fmt.Sprintf("+%d%%", ParseBoost(string(c.ExpectedDemandBoost), a.cfg.DefaultBoost)),
	}
}

// ScoreDays sums each signal's weight over the days it recommends. A day
// listed twice by one signal is counted once.
//
//nolint:gocritic // signals are passed by value; they are read-only here
func (a *Aggregator) ScoreDays(e EngagementSignal, c CulturalSignal, h HistoricalSignal) map[string]int {
	scores := make(map[string]int, len(Weekdays))
	for _, d := range Weekdays {
		scores[d] = 0
	}

	add := func(days []string, weight int) {
		seen := make(map[string]struct{}, len(days))
		for _, d := range days {
			if _, ok := scores[d]; !ok {
				continue
			}
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			scores[d] += weight
		}
	}

	add(e.BestDays, a.cfg.Weights.Engagement)
	add(c.BestDays, a.cfg.Weights.Cultural)
	add(h.BestDays, a.cfg.Weights.Historical)
	return scores
}

// RankDays returns at most MaxDays days with a score above MinDayScore,
// highest first, ties in Weekdays order.
//
//nolint:gocritic // signals are passed by value; they are read-only here
func (a *Aggregator) RankDays(e EngagementSignal, c CulturalSignal, h HistoricalSignal) []DayScore {
	scores := a.ScoreDays(e, c, h)

	ranked := make([]DayScore, 0, len(Weekdays))
	for _, d := range Weekdays {
		ranked = append(ranked, DayScore{Day: d, Score: scores[d]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	out := make([]DayScore, 0, a.cfg.MaxDays)
	for _, ds := range ranked {
		if ds.Score <= a.cfg.MinDayScore || len(out) == a.cfg.MaxDays {
			break
		}
		out = append(out, ds)
	}
	return out
}

// UnionTimeSlots concatenates slot lists in order, keeping the first
// occurrence of each slot.
func UnionTimeSlots(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, slot := range list {
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			out = append(out, slot)
		}
	}
	return out
}

// FormatBestTime renders "<days> | <time>". Days are the first SummaryDays
// ranked days joined by ", "; time is the first slot. Empty parts use the
// configured defaults.
func (a *Aggregator) FormatBestTime(days, slots []string) string {
	dayPart := a.cfg.DefaultDays
	if len(days) > 0 {
		n := min(len(days), a.cfg.SummaryDays)
		dayPart = strings.Join(days[:n], ", ")
	}

	timePart := a.cfg.DefaultTime
	if len(slots) > 0 {
		timePart = slots[0]
	}

	return dayPart + " | " + timePart
}

// ParseBoost reads the leading integer of a boost estimate such as
// "+50-70%" (50). The text before the first '-' is reduced to its digits;
// if none remain, def is returned.
func ParseBoost(s string, def int) int {
	head, _, _ := strings.Cut(s, "-")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, head)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return def
	}
	return n
}

// Dedupe removes blank and repeated entries, keeping first-seen order.
func Dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if strings.TrimFunc(item, unicode.IsSpace) == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
