// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const modelJSON = `{
  "season_spike": ["Diwali", "Navratri"],
  "best_months": ["September", "October"],
  "target_states": ["Tamil Nadu", "Karnataka", "Tamil Nadu"],
  "festivals": ["Ganesh Chaturthi"],
  "best_days": ["Thursday", "Sunday"],
  "best_time_slots": ["7:00am-9:00am", "6:00pm-8:00pm"],
  "reasoning": "Idols are bought ahead of household pujas.",
  "expected_demand_boost": "+80-120%",
  "cultural_insights": "Brass is favoured for durability."
}`

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "Here you go:\n```json\n{\"a\":1}\n```\nThanks", `{"a":1}`},
		{"generic fence", "```\n{\"a\":2}\n```", `{"a":2}`},
		{"json fence preferred", "```text\nnote\n```\n```json\n{\"a\":3}\n```", `{"a":3}`},
		{"unterminated fence", "```json\n{\"a\":4}", `{"a":4}`},
		{"no fence", "  {\"a\":5}\n", `{"a":5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCulturalSignal(t *testing.T) {
	sig, err := ParseCulturalSignal("```json\n" + modelJSON + "\n```")
	if err != nil {
		t.Fatalf("ParseCulturalSignal: %v", err)
	}

	if sig.Provenance != ProvenanceModel {
		t.Errorf("Provenance = %s, want model", sig.Provenance)
	}
	if want := []string{"Thursday", "Sunday"}; !reflect.DeepEqual(sig.BestDays, want) {
		t.Errorf("BestDays = %v, want %v", sig.BestDays, want)
	}
	if sig.ExpectedDemandBoost != "+80-120%" {
		t.Errorf("ExpectedDemandBoost = %q", sig.ExpectedDemandBoost)
	}
}

func TestParseCulturalSignal_Rejects(t *testing.T) {
	for _, in := range []string{
		"I think Diwali is best.",
		"```json\n[1,2,3]\n```",
		"{not json",
		`{"best_days": "Friday"}`,
	} {
		if _, err := ParseCulturalSignal(in); err == nil {
			t.Errorf("ParseCulturalSignal(%q) should fail", in)
		}
	}
}

func TestParseCulturalSignal_NonStringBoost(t *testing.T) {
	sig, err := ParseCulturalSignal(`{"expected_demand_boost": 75, "best_days": ["Friday"]}`)
	if err != nil {
		t.Fatalf("ParseCulturalSignal: %v", err)
	}
	if sig.ExpectedDemandBoost != "" {
		t.Errorf("non-string boost should decode empty, got %q", sig.ExpectedDemandBoost)
	}
	if got := ParseBoost(string(sig.ExpectedDemandBoost), 50); got != 50 {
		t.Errorf("ParseBoost = %d, want default 50", got)
	}
}

func TestCulturalAdapter_Fetch(t *testing.T) {
	gen := &fakeGenerator{text: modelJSON}
	adapter := NewCulturalAdapter(gen, zerolog.Nop())

	q := Query{ProductName: "Brass Ganesh Idol", Category: "Spiritual Items", Keywords: []string{"brass", "ganesh", "idol"}}
	sig := adapter.Fetch(context.Background(), q)

	if sig.Provenance != ProvenanceModel || sig.Error != "" {
		t.Fatalf("unexpected signal: %+v", sig)
	}

	prompt, _ := gen.lastPrompt.Load().(string)
	for _, want := range []string{"Product: Brass Ganesh Idol", "Category: Spiritual Items", "Keywords: brass, ganesh, idol", "Only respond with valid JSON."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCulturalAdapter_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		gen  TextGenerator
	}{
		{"no generator", nil},
		{"generation error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"prose response", &fakeGenerator{text: "Post on weekends."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := NewCulturalAdapter(tt.gen, zerolog.Nop()).Fetch(context.Background(), Query{Category: "Textiles"})

			if sig.Provenance != ProvenanceFallback {
				t.Errorf("Provenance = %s, want fallback", sig.Provenance)
			}
			if sig.Error == "" {
				t.Error("fallback should carry the failure reason")
			}
			if sig.ExpectedDemandBoost != "+50-70%" {
				t.Errorf("ExpectedDemandBoost = %q", sig.ExpectedDemandBoost)
			}
			if !strings.Contains(sig.Reasoning, "Textiles") {
				t.Errorf("Reasoning should name the category: %q", sig.Reasoning)
			}
		})
	}
}
