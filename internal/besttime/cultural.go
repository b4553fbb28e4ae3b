// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// SourceCultural names the cultural signal in logs and metrics.
const SourceCultural = "cultural"

// TextGenerator produces a free-text completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CulturalAdapter asks a generative model for seasonal, regional and
// festival demand for a product.
type CulturalAdapter struct {
	gen    TextGenerator
	logger zerolog.Logger
}

// NewCulturalAdapter creates a cultural adapter. gen may be nil, in which
// case the fallback signal is always returned.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCulturalAdapter(gen TextGenerator, logger zerolog.Logger) *CulturalAdapter {
	return &CulturalAdapter{gen: gen, logger: logger}
}

// errNoGenerator is reported in the fallback signal when no model is wired.
var errNoGenerator = errors.New("generative model not configured")

// Fetch returns the cultural signal for q. It never fails: any generation
// or parse failure yields FallbackCulturalSignal.
func (a *CulturalAdapter) Fetch(ctx context.Context, q Query) CulturalSignal {
	if a.gen == nil {
		return FallbackCulturalSignal(q.Category, errNoGenerator)
	}

	text, err := a.gen.Generate(ctx, BuildCulturalPrompt(q))
	if err != nil {
		a.logger.Warn().Err(err).Msg("cultural generation failed, using fallback")
		return FallbackCulturalSignal(q.Category, err)
	}

	signal, err := ParseCulturalSignal(text)
	if err != nil {
		a.logger.Warn().Err(err).Int("response_len", len(text)).Msg("cultural response unparseable, using fallback")
		return FallbackCulturalSignal(q.Category, err)
	}
	return signal
}

const culturalPrompt = `You are a market intelligence expert analyzing product demand in India.

Product: %s
Category: %s
Keywords: %s

Analyze the following:
1. **Seasonal Demand**: Which months/seasons have highest demand? Consider Indian festivals, weather, cultural events.
2. **Regional Preferences**: Which Indian states would be most interested? Why?
3. **Festival Connection**: Which festivals boost this product's demand?
4. **Best Posting Days**: Which days of the week are best for marketing this product?
5. **Optimal Posting Time**: What time windows (morning/afternoon/evening) work best?
6. **Target Audience Behavior**: When is the target audience most active on social media?

Provide your analysis in JSON format:
{
  "season_spike": ["festival_name or month"],
  "best_months": ["month1", "month2"],
  "target_states": ["state1", "state2", "state3"],
  "festivals": ["festival1", "festival2"],
  "best_days": ["day1", "day2", "day3"],
  "best_time_slots": ["time_range1", "time_range2"],
  "reasoning": "detailed explanation",
  "expected_demand_boost": "percentage or description",
  "cultural_insights": "key cultural factors"
}

Only respond with valid JSON.`

// BuildCulturalPrompt renders the market-intelligence prompt for q.
func BuildCulturalPrompt(q Query) string {
	return fmt.Sprintf(culturalPrompt, q.ProductName, q.Category, strings.Join(q.Keywords, ", "))
}

// StripCodeFence extracts the body of a markdown code fence. A "```json"
// fence is preferred; otherwise the first generic fence is used. Text
// without a fence is returned trimmed.
func StripCodeFence(text string) string {
	if _, after, ok := strings.Cut(text, "```json"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	if _, after, ok := strings.Cut(text, "```"); ok {
		body, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(text)
}

// ParseCulturalSignal decodes a model response into a CulturalSignal. The
// response must be a JSON object, optionally wrapped in a code fence.
func ParseCulturalSignal(text string) (CulturalSignal, error) {
	body := StripCodeFence(text)
	if !strings.HasPrefix(body, "{") {
		return CulturalSignal{}, fmt.Errorf("cultural response is not a JSON object")
	}

	var signal CulturalSignal
	if err := json.Unmarshal([]byte(body), &signal); err != nil {
		return CulturalSignal{}, fmt.Errorf("failed to decode cultural response: %w", err)
	}
	signal.Error = ""
	signal.Provenance = ProvenanceModel
	return signal, nil
}

// FallbackCulturalSignal is returned when the model is unavailable or its
// output cannot be parsed.
func FallbackCulturalSignal(category string, err error) CulturalSignal {
	return CulturalSignal{
		SeasonSpike:         []string{"Diwali", "Holi"},
		BestMonths:          []string{"October", "November", "March"},
		TargetStates:        []string{"Maharashtra", "Gujarat", "Rajasthan"},
		Festivals:           []string{"Diwali", "Ganesh Chaturthi"},
		BestDays:            []string{"Friday", "Saturday", "Sunday"},
		BestTimeSlots:       []string{"6:00pm-9:00pm", "11:00am-1:00pm"},
		Reasoning:           fmt.Sprintf("Traditional/artisan products like %s typically see demand during festival seasons.", category),
		ExpectedDemandBoost: "+50-70%",
		CulturalInsights:    "Cultural products align with festival preparations and gifting seasons",
		Error:               errString(err),
		Provenance:          ProvenanceFallback,
	}
}
