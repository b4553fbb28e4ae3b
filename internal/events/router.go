// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/tomtom215/postwise/internal/config"
	"github.com/tomtom215/postwise/internal/metrics"
)

// Router consumes bus topics and persists them through a Recorder.
type Router struct {
	router *message.Router
	rec    Recorder
	logger watermill.LoggerAdapter
}

// NewRouter creates a router with a persisting handler per topic.
//
// Middleware, outermost first:
//   - dropAfterRetries: logs and acks a message whose retries are exhausted
//   - Recoverer: converts handler panics into errors
//   - Retry: exponential backoff for transient failures
func NewRouter(bus *Bus, rec Recorder, cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r := &Router{router: wmRouter, rec: rec, logger: logger}

	wmRouter.AddMiddleware(r.dropAfterRetries)
	wmRouter.AddMiddleware(middleware.Recoverer)

	initial := cfg.RetryInitialInterval
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryCount,
		InitialInterval: initial,
		MaxInterval:     initial * 20,
		Multiplier:      2.0,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	handlers := map[string]message.NoPublishHandlerFunc{
		TopicInteractionTracked:      r.handleInteraction,
		TopicRecommendationGenerated: r.handleRecommendation,
	}
	for _, topic := range Topics {
		sub, err := bus.Subscriber(topic)
		if err != nil {
			return nil, err
		}
		wmRouter.AddConsumerHandler(durableName("persist", topic), topic, sub, handlers[topic])
	}

	return r, nil
}

// Run starts consuming and blocks until ctx is cancelled or Close is called.
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running is closed once every handler is subscribed.
func (r *Router) Running() chan struct{} {
	return r.router.Running()
}

// Close stops the router, waiting up to the configured close timeout.
func (r *Router) Close() error {
	return r.router.Close()
}

func (r *Router) handleInteraction(msg *message.Message) error {
	in, err := DecodeInteraction(msg)
	if err != nil {
		// Malformed payloads never succeed; acknowledge and move on.
		r.logger.Error("Dropping undecodable interaction", err, watermill.LogFields{"uuid": msg.UUID})
		metrics.RecordEventConsumed(TopicInteractionTracked, err)
		return nil
	}

	err = r.rec.RecordInteraction(msg.Context(), in)
	metrics.RecordEventConsumed(TopicInteractionTracked, err)
	return err
}

func (r *Router) handleRecommendation(msg *message.Message) error {
	ev, err := DecodeRecommendation(msg)
	if err != nil {
		r.logger.Error("Dropping undecodable recommendation", err, watermill.LogFields{"uuid": msg.UUID})
		metrics.RecordEventConsumed(TopicRecommendationGenerated, err)
		return nil
	}

	_, err = r.rec.RecordRecommendation(msg.Context(), ev.ID, &ev.Recommendation)
	metrics.RecordEventConsumed(TopicRecommendationGenerated, err)
	return err
}

func (r *Router) dropAfterRetries(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		out, err := h(msg)
		if err != nil {
			r.logger.Error("Event handling failed after retries, dropping", err, watermill.LogFields{
				"uuid":    msg.UUID,
				"handler": message.HandlerNameFromCtx(msg.Context()),
			})
			return nil, nil
		}
		return out, nil
	}
}
