// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/postwise/internal/instagram"
)

// SourceEngagement names the engagement signal in logs and metrics.
const SourceEngagement = "engagement"

// MediaSource provides the seller's recent posts.
type MediaSource interface {
	Configured() bool
	RecentMedia(ctx context.Context, limit int) ([]instagram.Media, error)
}

// EngagementAdapter derives peak posting hours and days from recent posts.
type EngagementAdapter struct {
	source MediaSource
	cfg    *Config
	logger zerolog.Logger
}

// NewEngagementAdapter creates an engagement adapter. source may be nil,
// in which case the default estimate is always returned.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngagementAdapter(source MediaSource, cfg *Config, logger zerolog.Logger) *EngagementAdapter {
	return &EngagementAdapter{source: source, cfg: cfg, logger: logger}
}

// Fetch returns the engagement signal for q. It never fails: missing
// credentials yield DefaultEngagementSignal and any other failure yields
// FallbackEngagementSignal.
func (a *EngagementAdapter) Fetch(ctx context.Context, q Query) EngagementSignal {
	if a.source == nil || !a.source.Configured() {
		return DefaultEngagementSignal()
	}

	media, err := a.source.RecentMedia(ctx, a.cfg.MediaLimit)
	if err != nil {
		a.logger.Warn().Err(err).Msg("recent media fetch failed, using fallback engagement")
		return FallbackEngagementSignal(err)
	}

	signal, err := a.analyze(media, q.tags())
	if err != nil {
		a.logger.Warn().Err(err).Msg("engagement analysis failed, using fallback engagement")
		return FallbackEngagementSignal(err)
	}
	return signal
}

type bucket struct {
	total float64
	count int
}

func (b bucket) avg() float64 {
	return b.total / float64(b.count)
}

// analyze computes per-hour and per-day average engagement over the posts
// whose caption contains any tag. An empty tag list matches every post.
func (a *EngagementAdapter) analyze(media []instagram.Media, tags []string) (EngagementSignal, error) {
	lowered := make([]string, len(tags))
	for i, tag := range tags {
		lowered[i] = strings.ToLower(tag)
	}

	byHour := make(map[int]*bucket)
	byDay := make(map[string]*bucket)
	var total, likes, comments, saves float64
	matched := 0

	for i := range media {
		post := &media[i]
		if !captionMatches(post.Caption, lowered) {
			continue
		}

		posted, err := post.PostedAt()
		if err != nil {
			return EngagementSignal{}, err
		}

		saved := post.Insight("saved")
		score := float64(post.LikeCount + post.CommentsCount + saved)

		addToBucket(byHour, posted.Hour(), score)
		addToBucket(byDay, posted.Weekday().String(), score)

		total += score
		likes += float64(post.LikeCount)
		comments += float64(post.CommentsCount)
		saves += float64(saved)
		matched++
	}

	peakTimes := make([]string, 0, a.cfg.TopHours)
	for _, h := range topHours(byHour, a.cfg.TopHours) {
		peakTimes = append(peakTimes, fmt.Sprintf("%d:00-%d:00", h, h+1))
	}

	metrics := map[string]any{
		"total_posts_analyzed": matched,
		"total_posts_fetched":  len(media),
	}
	rate := 0.0
	if matched > 0 {
		n := float64(matched)
		rate = total / n / a.cfg.RateDivisor
		metrics["avg_likes"] = likes / n
		metrics["avg_comments"] = comments / n
		metrics["avg_saves"] = saves / n
		metrics["avg_engagement"] = total / n
	}

	return EngagementSignal{
		PeakTimes:         peakTimes,
		BestDays:          topDays(byDay, a.cfg.TopDays),
		AvgEngagementRate: rate,
		Metrics:           metrics,
		Source:            "instagram_graph_api",
		Provenance:        ProvenanceLive,
	}, nil
}

func captionMatches(caption string, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	caption = strings.ToLower(caption)
	for _, tag := range tags {
		if strings.Contains(caption, tag) {
			return true
		}
	}
	return false
}

func addToBucket[K comparable](m map[K]*bucket, key K, score float64) {
	b, ok := m[key]
	if !ok {
		b = &bucket{}
		m[key] = b
	}
	b.total += score
	b.count++
}

// topHours ranks hours by average score; ties go to the earlier hour.
func topHours(byHour map[int]*bucket, n int) []int {
	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		ai, aj := byHour[hours[i]].avg(), byHour[hours[j]].avg()
		if ai != aj {
			return ai > aj
		}
		return hours[i] < hours[j]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// topDays ranks days by average score; ties follow Weekdays order.
func topDays(byDay map[string]*bucket, n int) []string {
	days := make([]string, 0, len(byDay))
	for _, d := range Weekdays {
		if _, ok := byDay[d]; ok {
			days = append(days, d)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return byDay[days[i]].avg() > byDay[days[j]].avg()
	})
	if len(days) > n {
		days = days[:n]
	}
	return days
}

// DefaultEngagementSignal is returned when Graph API credentials are missing.
func DefaultEngagementSignal() EngagementSignal {
	return EngagementSignal{
		PeakTimes:         []string{"Friday-Sunday 7:00pm-10:00pm"},
		BestDays:          []string{"Friday", "Saturday", "Sunday"},
		AvgEngagementRate: 0.045,
		Metrics: map[string]any{
			"avg_likes":    150,
			"avg_comments": 25,
			"avg_shares":   10,
			"avg_saves":    35,
		},
		Source:     "default_estimate",
		Provenance: ProvenanceFallback,
	}
}

// FallbackEngagementSignal is returned when fetching or analysing posts fails.
func FallbackEngagementSignal(err error) EngagementSignal {
	return EngagementSignal{
		PeakTimes:         []string{"18:00-19:00", "19:00-20:00", "20:00-21:00"},
		BestDays:          []string{"Friday", "Saturday", "Sunday"},
		AvgEngagementRate: 0.045,
		Metrics: map[string]any{
			"avg_likes":    150,
			"avg_comments": 25,
			"error":        errString(err),
		},
		Source:     "fallback_estimate",
		Provenance: ProvenanceFallback,
	}
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
