// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package api exposes Postwise over HTTP using the chi router.

Routes:

	POST /api/best-time/analyze            best time for one product
	GET  /api/best-time/test               sample analysis (Brass Ganesh Idol)
	GET  /api/best-time/health             provider configuration status
	GET  /api/best-time/recent?limit=N     recently generated recommendations
	POST /api/analytics/track-interaction  record a shopper interaction
	GET  /api/analytics/timing/{artisan_id} timing insights for one artisan
	POST /api/instagram/publish            publish an image post
	GET  /health/live, /health/ready       process probes
	GET  /metrics                          Prometheus exposition

Middleware, outermost first: request ID, access log, real IP, panic
recovery, security headers, Prometheus metrics, CORS. Each /api group has
its own httprate limit, and all /api routes except the best-time health
check pass through the optional JWT authentication.

Responses use a small JSON envelope:

	{"status": "success", "data": {...}}
	{"status": "error", "detail": "Analysis failed: ..."}
	{"status": "error", "detail": "invalid request", "errors": [{"field": "keywords", ...}]}

Interaction tracking and publishing answer with flat bodies carrying
"interaction_id" or "media_id" next to "status".
*/
package api
