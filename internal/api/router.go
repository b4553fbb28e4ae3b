// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/postwise/internal/auth"
	"github.com/tomtom215/postwise/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil authMiddleware leaves /api open.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMw *ChiMiddleware) *Router {
	if authMiddleware == nil {
		authMiddleware = auth.NewMiddleware(nil, auth.ModeNone)
	}
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		auth:          authMiddleware,
		chiMiddleware: chiMw,
	}
}

// Setup returns the HTTP handler for all routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(APISecurityHeaders())
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusNotFound, &Response{Status: StatusError, Detail: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, &Response{Status: StatusError, Detail: "Method Not Allowed"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/best-time", func(r chi.Router) {
		r.With(router.chiMiddleware.RateLimitHealth()).Get("/health", router.handler.BestTimeHealth)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAnalyze())
			r.Use(router.auth.Authenticate)
			r.Post("/analyze", router.handler.Analyze)
			r.Get("/test", router.handler.AnalyzeSample)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitAnalytics())
			r.Use(router.auth.Authenticate)
			r.Get("/recent", router.handler.RecentRecommendations)
		})
	})

	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAnalytics())
		r.Use(router.auth.Authenticate)
		r.Post("/track-interaction", router.handler.TrackInteraction)
		r.Get("/timing/{artisan_id}", router.handler.Timing)
	})

	r.Route("/api/instagram", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAnalyze())
		r.Use(router.auth.Authenticate)
		r.Post("/publish", router.handler.PublishInstagram)
	})

	return r
}
