// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/tomtom215/postwise/internal/besttime"
	"github.com/tomtom215/postwise/internal/events"
	"github.com/tomtom215/postwise/internal/logging"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// sampleRequest backs GET /api/best-time/test.
var sampleRequest = AnalyzeRequest{
	ProductName: "Brass Ganesh Idol",
	Category:    "Spiritual Items",
	Keywords:    []string{"brass", "ganesh", "idol", "statue", "handcrafted"},
	Hashtags:    []string{"#brass", "#ganesh", "#spiritual", "#handmade"},
}

// Analyze handles POST /api/best-time/analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec := h.analyze(r.Context(), &req)
	if rec.Failed() {
		respondJSON(w, http.StatusInternalServerError, &Response{
			Status: StatusError,
			Detail: "Analysis failed: " + rec.Error,
		})
		return
	}

	respondSuccess(w, rec)
}

// AnalyzeSample handles GET /api/best-time/test.
func (h *Handler) AnalyzeSample(w http.ResponseWriter, r *http.Request) {
	req := sampleRequest
	rec := h.analyze(r.Context(), &req)
	if rec.Failed() {
		respondJSON(w, http.StatusInternalServerError, &Response{
			Status: StatusError,
			Detail: "Test failed: " + rec.Error,
		})
		return
	}

	respondJSON(w, http.StatusOK, &Response{
		Status:  StatusSuccess,
		Message: "Test analysis completed",
		Data:    rec,
	})
}

// analyze runs the analyzer and announces a successful result.
func (h *Handler) analyze(ctx context.Context, req *AnalyzeRequest) besttime.Recommendation {
	rec := h.analyzer.Analyze(ctx, req.ProductName, req.Category, req.Keywords, req.Hashtags)
	if rec.Failed() {
		return rec
	}

	ev := &events.RecommendationGenerated{
		ID:             uuid.New().String(),
		GeneratedAt:    h.now().UTC(),
		Recommendation: rec,
	}
	if err := h.events.RecommendationGenerated(ctx, ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("recommendation_id", ev.ID).Msg("Failed to publish recommendation event")
	}
	return rec
}

// BestTimeHealth handles GET /api/best-time/health.
func (h *Handler) BestTimeHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &bestTimeHealth{
		Status:              "healthy",
		InstagramConfigured: h.publisher != nil && h.publisher.Configured(),
		GeminiConfigured:    h.geminiConfigured,
		Service:             "best-time-analyzer",
	})
}

// RecentRecommendations handles GET /api/best-time/recent.
func (h *Handler) RecentRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, r, http.StatusServiceUnavailable, "warehouse is disabled", nil)
		return
	}

	limit := getIntParam(r, "limit", defaultRecentLimit)
	if limit < 1 {
		limit = defaultRecentLimit
	}
	limit = min(limit, maxRecentLimit)

	recs, err := h.store.RecentRecommendations(r.Context(), limit)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to load recommendations", err)
		return
	}

	respondSuccess(w, recs)
}
