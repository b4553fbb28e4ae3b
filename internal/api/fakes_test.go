// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/postwise/internal/besttime"
	"github.com/tomtom215/postwise/internal/events"
	"github.com/tomtom215/postwise/internal/warehouse"
)

type analyzeCall struct {
	product, category  string
	keywords, hashtags []string
}

type fakeAnalyzer struct {
	mu    sync.Mutex
	rec   besttime.Recommendation
	calls []analyzeCall
}

func (f *fakeAnalyzer) Analyze(_ context.Context, product, category string, keywords, hashtags []string) besttime.Recommendation {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, analyzeCall{product, category, keywords, hashtags})
	rec := f.rec
	rec.Product = product
	rec.Category = category
	return rec
}

type fakePublisher struct {
	configured bool
	mediaID    string
	err        error
	gotURL     string
	gotCaption string
}

func (f *fakePublisher) Configured() bool { return f.configured }

func (f *fakePublisher) Publish(_ context.Context, imageURL, caption string) (string, error) {
	f.gotURL, f.gotCaption = imageURL, caption
	return f.mediaID, f.err
}

type fakeStore struct {
	timing   *warehouse.TimingInsights
	recent   []warehouse.StoredRecommendation
	err      error
	pingErr  error
	gotLimit int
	gotID    string
}

func (f *fakeStore) Timing(_ context.Context, artisanID string) (*warehouse.TimingInsights, error) {
	f.gotID = artisanID
	return f.timing, f.err
}

func (f *fakeStore) RecentRecommendations(_ context.Context, limit int) ([]warehouse.StoredRecommendation, error) {
	f.gotLimit = limit
	return f.recent, f.err
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

type fakeEmitter struct {
	mu              sync.Mutex
	interactions    []*warehouse.Interaction
	recommendations []*events.RecommendationGenerated
	err             error
}

func (f *fakeEmitter) InteractionTracked(_ context.Context, in *warehouse.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.interactions = append(f.interactions, in)
	return nil
}

func (f *fakeEmitter) RecommendationGenerated(_ context.Context, ev *events.RecommendationGenerated) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.recommendations = append(f.recommendations, ev)
	return nil
}

var errProvider = errors.New("provider unavailable")

func sampleRecommendation() besttime.Recommendation {
	return besttime.Recommendation{
		TargetRegions:       []string{"Maharashtra", "Gujarat"},
		BestTimeToPost:      "Saturday, Sunday | 18:00-19:00",
		SeasonSpike:         []string{"October", "November"},
		Festivals:           []string{"Diwali"},
		Reasoning:           "Festive demand",
		ExpectedImprovement: "+50%",
	}
}

// serve runs one request through the full router.
func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func newTestServer(deps Deps) http.Handler {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(NewHandler(deps), nil, NewChiMiddleware(cfg)).Setup()
}
