// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"errors"

	"github.com/goccy/go-json"
)

// ErrNoHistory is returned by a PerformanceStore that has no recorded
// activity for the requested category.
var ErrNoHistory = errors.New("no historical performance recorded")

// Provenance records where a signal's content came from.
type Provenance string

const (
	// ProvenanceLive marks data computed from live engagement posts.
	ProvenanceLive Provenance = "live"
	// ProvenanceModel marks data produced by the generative model.
	ProvenanceModel Provenance = "model"
	// ProvenanceRecorded marks data read from the interaction warehouse.
	ProvenanceRecorded Provenance = "recorded"
	// ProvenanceFallback marks a documented default used after a failure.
	ProvenanceFallback Provenance = "fallback"
	// ProvenanceMock marks canned data used when no store is available.
	ProvenanceMock Provenance = "mock"
)

// Weekdays lists day names in canonical order. It is the tie-break order
// for every day ranking.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Query identifies the product being analysed.
type Query struct {
	ProductName string
	Category    string
	Keywords    []string
	// Hashtags filter engagement posts by caption. Nil means "use Keywords".
	Hashtags []string
}

// tags returns the hashtag filter, defaulting to keywords when omitted.
func (q *Query) tags() []string {
	if q.Hashtags == nil {
		return q.Keywords
	}
	return q.Hashtags
}

// EngagementSignal summarises when the seller's own posts perform best.
type EngagementSignal struct {
	PeakTimes         []string       `json:"peak_times"`
	BestDays          []string       `json:"best_days"`
	AvgEngagementRate float64        `json:"avg_engagement_rate"`
	Metrics           map[string]any `json:"engagement_metrics"`
	Source            string         `json:"source"`
	Provenance        Provenance     `json:"provenance"`
}

// CulturalSignal is the generative model's view of seasonal demand.
type CulturalSignal struct {
	SeasonSpike         []string      `json:"season_spike"`
	BestMonths          []string      `json:"best_months"`
	TargetStates        []string      `json:"target_states"`
	Festivals           []string      `json:"festivals"`
	BestDays            []string      `json:"best_days"`
	BestTimeSlots       []string      `json:"best_time_slots"`
	Reasoning           string        `json:"reasoning"`
	ExpectedDemandBoost LenientString `json:"expected_demand_boost"`
	CulturalInsights    string        `json:"cultural_insights"`
	Error               string        `json:"error,omitempty"`
	Provenance          Provenance    `json:"provenance"`
}

// HistoricalSignal summarises recorded marketplace activity for a category.
type HistoricalSignal struct {
	BestTimes  []string           `json:"best_times"`
	BestDays   []string           `json:"best_days"`
	Stats      map[string]float64 `json:"performance_stats"`
	Source     string             `json:"source"`
	Provenance Provenance         `json:"provenance"`
}

// Performance is what a PerformanceStore reports for a category.
type Performance struct {
	BestTimes []string
	BestDays  []string
	Stats     map[string]float64
}

// Recommendation is the final output of an analysis. When Error is set the
// JSON form carries only product, category and error.
type Recommendation struct {
	Product             string   `json:"product"`
	Category            string   `json:"category"`
	TargetRegions       []string `json:"target_region"`
	BestTimeToPost      string   `json:"best_time_to_post"`
	SeasonSpike         []string `json:"season_spike"`
	Festivals           []string `json:"festivals"`
	Reasoning           string   `json:"reasoning"`
	ExpectedImprovement string   `json:"expected_engagement_improvement"`
	Error               string   `json:"error,omitempty"`
}

// Failed reports whether the recommendation is an error object.
func (r *Recommendation) Failed() bool {
	return r.Error != ""
}

// MarshalJSON emits either the full recommendation or the error object.
func (r Recommendation) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Product  string `json:"product"`
			Category string `json:"category"`
			Error    string `json:"error"`
		}{r.Product, r.Category, r.Error})
	}

	type plain Recommendation
	return json.Marshal(plain(r))
}

// LenientString decodes any JSON scalar. Strings keep their value; other
// types decode to "" so downstream parsing falls back to its default.
type LenientString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *LenientString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*s = ""
		return nil
	}
	*s = LenientString(str)
	return nil
}
