// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package middleware provides chi-compatible HTTP middleware shared by the API.

Components:

  - RequestID: reuses or generates X-Request-ID and seeds the logging context
    with request and correlation IDs
  - AccessLog: one zerolog line per request, WARN when slow, ERROR on 5xx
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern

Order matters. RequestID runs first so later middleware can log with the IDs:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

Thread Safety: all middleware is stateless and safe for concurrent use.
*/
package middleware
