// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"net/http"

	"github.com/tomtom215/postwise/internal/logging"
)

// PublishInstagram handles POST /api/instagram/publish. Provider failures
// map to 502; a missing configuration maps to 503.
func (h *Handler) PublishInstagram(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.publisher == nil || !h.publisher.Configured() {
		respondError(w, r, http.StatusServiceUnavailable, "Instagram publishing is not configured", nil)
		return
	}

	mediaID, err := h.publisher.Publish(r.Context(), req.ImageURL, req.Caption)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "Instagram publish failed: "+err.Error(), err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("media_id", mediaID).Msg("Published Instagram post")
	respondJSON(w, http.StatusOK, &publishResponse{Status: StatusSuccess, MediaID: mediaID})
}
