// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"context"
	"net/http"
	"time"
)

const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests. The service is ready when
// the warehouse, if enabled, answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	warehouseOK := true
	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		warehouseOK = h.store.Ping(ctx) == nil
	}

	status := http.StatusOK
	state := StatusSuccess
	if !warehouseOK {
		status = http.StatusServiceUnavailable
		state = StatusError
	}

	respondJSON(w, status, &Response{
		Status: state,
		Data: map[string]any{
			"warehouse_enabled":   h.store != nil,
			"warehouse_connected": h.store != nil && warehouseOK,
			"ready_to_serve":      warehouseOK,
			"uptime":              time.Since(h.startTime).Seconds(),
		},
	})
}
