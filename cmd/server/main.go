// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/postwise/internal/api"
	"github.com/tomtom215/postwise/internal/auth"
	"github.com/tomtom215/postwise/internal/besttime"
	"github.com/tomtom215/postwise/internal/breaker"
	"github.com/tomtom215/postwise/internal/config"
	"github.com/tomtom215/postwise/internal/events"
	"github.com/tomtom215/postwise/internal/gemini"
	"github.com/tomtom215/postwise/internal/instagram"
	"github.com/tomtom215/postwise/internal/logging"
	"github.com/tomtom215/postwise/internal/supervisor"
	"github.com/tomtom215/postwise/internal/supervisor/services"
	"github.com/tomtom215/postwise/internal/warehouse"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.FromConfig(&cfg.Logging))

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("events_mode", cfg.Events.Mode).
		Bool("warehouse_enabled", cfg.Warehouse.Enabled).
		Bool("instagram_configured", cfg.Instagram.Configured()).
		Bool("gemini_configured", cfg.Gemini.Configured()).
		Msg("Starting Postwise with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === PROVIDER CLIENTS ===

	igClient := instagram.NewClient(&cfg.Instagram, breaker.New(breaker.DefaultSettings("instagram-graph")))
	if !igClient.Configured() {
		logging.Warn().Msg("Instagram credentials not set: engagement uses the default estimate and publishing is unavailable")
	}

	geminiClient := gemini.NewClient(&cfg.Gemini, breaker.New(breaker.DefaultSettings("gemini")))

	var generator besttime.TextGenerator
	if geminiClient.Configured() {
		generator = geminiClient
		if cfg.Cache.Enabled {
			cacheDB, cacheErr := gemini.OpenCacheDB(&cfg.Cache)
			if cacheErr != nil {
				logging.Fatal().Err(cacheErr).Msg("Failed to open generative cache")
			}
			defer func() {
				if err := cacheDB.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing generative cache")
				}
			}()
			generator = gemini.NewCachedGenerator(geminiClient, cacheDB, geminiClient.Model(), cfg.Cache.TTL, logging.Logger()).
				WithValidator(func(text string) error {
					_, parseErr := besttime.ParseCulturalSignal(text)
					return parseErr
				})
			logging.Info().Str("path", cfg.Cache.Path).Dur("ttl", cfg.Cache.TTL).Msg("Generative cache enabled")
		}
	} else {
		logging.Warn().Msg("Gemini API key not set: cultural analysis uses the fallback signal")
	}

	// === WAREHOUSE ===

	var (
		db        *warehouse.DB
		perfStore besttime.PerformanceStore
		insights  api.InsightsStore
		recorder  events.Recorder
	)
	if cfg.Warehouse.Enabled {
		db, err = warehouse.Open(&cfg.Warehouse)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open analytics warehouse")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing analytics warehouse")
			}
		}()
		perfStore, insights, recorder = db, db, db
		logging.Info().Str("path", cfg.Warehouse.Path).Msg("Analytics warehouse initialized")
	} else {
		logging.Warn().Msg("Analytics warehouse disabled: historical signal and timing insights use defaults")
	}

	// === ANALYZER ===

	analyzer, err := besttime.NewAnalyzer(besttime.ConfigFrom(&cfg.BestTime), igClient, generator, perfStore, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create best-time analyzer")
	}

	// === AUTHENTICATION ===

	var authMiddleware *auth.Middleware
	switch cfg.Security.AuthMode {
	case auth.ModeJWT:
		jwtManager, jwtErr := auth.NewJWTManager(&cfg.Security)
		if jwtErr != nil {
			logging.Fatal().Err(jwtErr).Msg("Failed to initialize JWT manager")
		}
		authMiddleware = auth.NewMiddleware(jwtManager, auth.ModeJWT)
		logging.Info().Dur("session_timeout", cfg.Security.SessionTimeout).Msg("JWT authentication enabled")
	default:
		authMiddleware = auth.NewMiddleware(nil, auth.ModeNone)
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  Analysis, tracking and publishing endpoints are public.")
		logging.Warn().Msg("  Set AUTH_MODE=jwt and JWT_SECRET for any shared deployment.")
		logging.Warn().Msg("============================================================")
	}

	// === SUPERVISOR TREE ===

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})

	// === EVENTS ===

	var emitter events.Emitter
	switch {
	case cfg.Events.Mode == "disabled" || recorder == nil:
		emitter = events.NewDirect(recorder)
		logging.Info().Str("mode", cfg.Events.Mode).Bool("recording", recorder != nil).Msg("Event bus not started, events are written directly")
	default:
		bus, busErr := events.NewBus(ctx, &cfg.Events, logging.NewWatermillLogger("events"))
		if busErr != nil {
			logging.Fatal().Err(busErr).Msg("Failed to start event bus")
		}
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing event bus")
			}
		}()
		emitter = bus

		tree.AddMessagingService(services.NewEventRouterService(func() (services.EventRouter, error) {
			r, routerErr := events.NewRouter(bus, recorder, &cfg.Events, logging.NewWatermillLogger("event-router"))
			if routerErr != nil {
				return nil, routerErr
			}
			return r, nil
		}))
		logging.Info().Str("mode", bus.Mode()).Msg("Event bus started")
	}

	// === HTTP SERVER ===

	deps := api.Deps{
		Analyzer:         analyzer,
		Store:            insights,
		Events:           emitter,
		GeminiConfigured: geminiClient.Configured(),
	}
	if igClient.Configured() {
		deps.Publisher = igClient
	}
	handler := api.NewHandler(deps)

	router := api.NewRouter(handler, authMiddleware, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(&cfg.Security)))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server configured")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Run(ctx); err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
