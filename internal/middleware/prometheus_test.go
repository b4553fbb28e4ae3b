// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/postwise/internal/logging"
	"github.com/tomtom215/postwise/internal/metrics"
)

func newTestRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/analytics/timing/{artisan_id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "artisan_id")))
	})
	r.Post("/api/best-time/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return r
}

func TestPrometheusMetrics_LabelsByRoutePattern(t *testing.T) {
	const pattern = "/api/analytics/timing/{artisan_id}"
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, pattern, "200")
	before := testutil.ToFloat64(counter)

	router := newTestRouter()
	for _, id := range []string{"a1", "a2", "a3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analytics/timing/"+id, nil))
		if rec.Body.String() != id {
			t.Fatalf("body = %q, want %q", rec.Body.String(), id)
		}
	}

	if delta := testutil.ToFloat64(counter) - before; delta != 3 {
		t.Errorf("api_requests_total delta = %v, want 3", delta)
	}
}

func TestPrometheusMetrics_ErrorStatus(t *testing.T) {
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/best-time/analyze", "500")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/best-time/analyze", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", delta)
	}
}

func TestPrometheusMetrics_Unmatched(t *testing.T) {
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "200")
	before := testutil.ToFloat64(counter)

	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("unmatched delta = %v, want 1", delta)
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	previous := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf).Level(zerolog.DebugLevel))
	t.Cleanup(func() { logging.SetLogger(previous) })

	handler := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/instagram/publish", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{`"level":"error"`, `"status":502`, `"request_id":"req-123"`, `"path":"/api/instagram/publish"`} {
		if !strings.Contains(out, want) {
			t.Errorf("access log %q missing %s", out, want)
		}
	}
}
