// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type fakeRouter struct {
	runErr  error
	running chan struct{}
	closed  atomic.Int32
}

func (r *fakeRouter) Run(ctx context.Context) error {
	close(r.running)
	if r.runErr != nil {
		return r.runErr
	}
	<-ctx.Done()
	return nil
}

func (r *fakeRouter) Close() error {
	r.closed.Add(1)
	return nil
}

func TestEventRouterService_StopsOnCancel(t *testing.T) {
	router := &fakeRouter{running: make(chan struct{})}
	svc := NewEventRouterService(func() (EventRouter, error) { return router, nil })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	<-router.running
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
	if router.closed.Load() != 1 {
		t.Errorf("Close calls = %d, want 1", router.closed.Load())
	}
}

func TestEventRouterService_Errors(t *testing.T) {
	factoryErr := errors.New("bus closed")
	runErr := errors.New("subscribe failed")

	tests := []struct {
		name    string
		factory RouterFactory
		want    error
	}{
		{
			name:    "factory",
			factory: func() (EventRouter, error) { return nil, factoryErr },
			want:    factoryErr,
		},
		{
			name: "run",
			factory: func() (EventRouter, error) {
				return &fakeRouter{runErr: runErr, running: make(chan struct{})}, nil
			},
			want: runErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEventRouterService(tt.factory).Serve(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Serve() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEventRouterService_RestartBuildsNewRouter(t *testing.T) {
	var built atomic.Int32
	svc := NewEventRouterService(func() (EventRouter, error) {
		if built.Add(1) == 1 {
			return &fakeRouter{runErr: errors.New("transient"), running: make(chan struct{})}, nil
		}
		return &fakeRouter{running: make(chan struct{})}, nil
	})

	sup := suture.New("test", suture.Spec{FailureThreshold: 5, FailureBackoff: 10 * time.Millisecond, Timeout: time.Second})
	sup.Add(svc)

	ctx, cancel := context.WithCancel(context.Background())
	done := sup.ServeBackground(ctx)

	deadline := time.After(3 * time.Second)
	for built.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("routers built = %d, want 2", built.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}
