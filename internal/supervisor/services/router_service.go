// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package services

import (
	"context"
	"fmt"

	"github.com/tomtom215/postwise/internal/logging"
)

// EventRouter is the lifecycle of *events.Router.
type EventRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// RouterFactory builds a fresh router. A watermill router cannot be run
// again once it stopped, so every restart asks for a new one.
type RouterFactory func() (EventRouter, error)

// EventRouterService runs the event consumers under suture.
type EventRouterService struct {
	newRouter RouterFactory
	name      string
}

// NewEventRouterService creates the service.
func NewEventRouterService(newRouter RouterFactory) *EventRouterService {
	return &EventRouterService{newRouter: newRouter, name: "event-router"}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	router, err := s.newRouter()
	if err != nil {
		return fmt.Errorf("create event router: %w", err)
	}

	logging.Info().Msg("Starting event router")
	runErr := router.Run(ctx)

	if closeErr := router.Close(); closeErr != nil {
		logging.Warn().Err(closeErr).Msg("Event router close failed")
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if runErr != nil {
		return fmt.Errorf("event router stopped: %w", runErr)
	}
	return fmt.Errorf("event router stopped unexpectedly")
}

// String names the service in supervisor logs.
func (s *EventRouterService) String() string {
	return s.name
}
