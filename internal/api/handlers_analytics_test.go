// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/tomtom215/postwise/internal/config"
	"github.com/tomtom215/postwise/internal/events"
	"github.com/tomtom215/postwise/internal/warehouse"
)

const trackBody = `{"user_id":"u1","artisan_id":"a1","product_id":"p1","category":"Pottery","action_type":"click"}`

func TestTrackInteraction(t *testing.T) {
	emitter := &fakeEmitter{}
	srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}, Events: emitter})

	rec := serve(t, srv, http.MethodPost, "/api/analytics/track-interaction", trackBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	id, _ := body["interaction_id"].(string)
	if body["status"] != "success" {
		t.Errorf("status = %v", body["status"])
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("interaction_id %q is not a UUID", id)
	}

	if len(emitter.interactions) != 1 {
		t.Fatalf("interaction events = %d", len(emitter.interactions))
	}
	in := emitter.interactions[0]
	if in.ID != id || in.DeviceType != "web" || in.SessionID == "" || in.OccurredAt.IsZero() || in.ActionType != "click" {
		t.Errorf("interaction = %+v", in)
	}
}

func TestTrackInteraction_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"unknown action", `{"user_id":"u1","artisan_id":"a1","product_id":"p1","action_type":"share"}`, "action_type"},
		{"missing user", `{"artisan_id":"a1","product_id":"p1","action_type":"view"}`, "user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emitter := &fakeEmitter{}
			srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}, Events: emitter})

			rec := serve(t, srv, http.MethodPost, "/api/analytics/track-interaction", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			errs := decodeBody(t, rec)["errors"].([]any)
			if errs[0].(map[string]any)["field"] != tt.wantField {
				t.Errorf("errors = %v", errs)
			}
			if len(emitter.interactions) != 0 {
				t.Error("rejected interaction was published")
			}
		})
	}
}

func TestTrackInteraction_PublishFailure(t *testing.T) {
	srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}, Events: &fakeEmitter{err: errProvider}})

	rec := serve(t, srv, http.MethodPost, "/api/analytics/track-interaction", trackBody)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestTiming(t *testing.T) {
	t.Run("warehouse disabled", func(t *testing.T) {
		srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}})

		rec := serve(t, srv, http.MethodGet, "/api/analytics/timing/a1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		data := decodeBody(t, rec)["data"].(map[string]any)
		if advice := data["best_timing"].([]any); len(advice) != len(warehouse.DefaultTimingAdvice) {
			t.Errorf("best_timing = %v", advice)
		}
	})

	t.Run("store", func(t *testing.T) {
		store := &fakeStore{timing: &warehouse.TimingInsights{
			BestTiming:     []string{"Post between 19:00-21:00 for maximum reach"},
			DetailedTiming: []warehouse.TimingSlot{{Day: "Thursday", Hour: 19, Period: "evening", Engagement: 3}},
		}}
		srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}, Store: store})

		rec := serve(t, srv, http.MethodGet, "/api/analytics/timing/artisan-42", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if store.gotID != "artisan-42" {
			t.Errorf("artisan id = %q", store.gotID)
		}
		slots := decodeBody(t, rec)["data"].(map[string]any)["detailed_timing"].([]any)
		if slot := slots[0].(map[string]any); slot["day"] != "Thursday" || slot["period"] != "evening" {
			t.Errorf("slot = %v", slot)
		}
	})

	t.Run("store error", func(t *testing.T) {
		srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}, Store: &fakeStore{err: errProvider}})
		if rec := serve(t, srv, http.MethodGet, "/api/analytics/timing/a1", ""); rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

// TestTrackThenTiming_Warehouse runs the direct (bus disabled) path against
// an in-memory warehouse.
func TestTrackThenTiming_Warehouse(t *testing.T) {
	db, err := warehouse.Open(&config.WarehouseConfig{Enabled: true})
	if err != nil {
		t.Fatalf("warehouse.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	srv := newTestServer(Deps{Analyzer: &fakeAnalyzer{}, Store: db, Events: events.NewDirect(db)})

	for i := 0; i < 2; i++ {
		if rec := serve(t, srv, http.MethodPost, "/api/analytics/track-interaction", trackBody); rec.Code != http.StatusOK {
			t.Fatalf("track status = %d, body %s", rec.Code, rec.Body.String())
		}
	}

	rec := serve(t, srv, http.MethodGet, "/api/analytics/timing/a1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("timing status = %d", rec.Code)
	}
	slots := decodeBody(t, rec)["data"].(map[string]any)["detailed_timing"].([]any)
	if len(slots) == 0 {
		t.Fatal("expected at least one timing slot")
	}
	total := 0.0
	for _, s := range slots {
		total += s.(map[string]any)["engagement"].(float64)
	}
	if total != 2 {
		t.Errorf("total engagement = %v, want 2", total)
	}
}
