// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/postwise/internal/logging"
	"github.com/tomtom215/postwise/internal/warehouse"
)

// TrackInteraction handles POST /api/analytics/track-interaction. The
// interaction is published and the ID returned before it is persisted.
func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	var req TrackInteractionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := &warehouse.Interaction{
		UserID:     req.UserID,
		ArtisanID:  req.ArtisanID,
		ProductID:  req.ProductID,
		Category:   req.Category,
		ActionType: req.ActionType,
		SessionID:  req.SessionID,
		DeviceType: req.DeviceType,
	}
	in.Normalize(h.now())

	if err := h.events.InteractionTracked(r.Context(), in); err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to track interaction", err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("interaction_id", in.ID).
		Str("action_type", in.ActionType).
		Msg("Interaction tracked")

	respondJSON(w, http.StatusOK, &trackInteractionResponse{
		Status:        StatusSuccess,
		InteractionID: in.ID,
	})
}

// Timing handles GET /api/analytics/timing/{artisan_id}. Without a
// warehouse the default advice is returned.
func (h *Handler) Timing(w http.ResponseWriter, r *http.Request) {
	artisanID := strings.TrimSpace(chi.URLParam(r, "artisan_id"))
	if artisanID == "" {
		respondError(w, r, http.StatusBadRequest, "artisan_id is required", nil)
		return
	}

	if h.store == nil {
		respondSuccess(w, &warehouse.TimingInsights{
			BestTiming:     warehouse.DefaultTimingAdvice,
			DetailedTiming: []warehouse.TimingSlot{},
		})
		return
	}

	insights, err := h.store.Timing(r.Context(), artisanID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to load timing insights", err)
		return
	}

	respondSuccess(w, insights)
}
