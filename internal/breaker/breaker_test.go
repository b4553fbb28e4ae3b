// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/postwise/internal/metrics"
)

func TestDo_Success(t *testing.T) {
	b := New(DefaultSettings("test-success"))

	got, err := Do(b, func() (string, error) { return "ok", nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q, want ok", got)
	}
	if b.State() != "closed" {
		t.Errorf("state = %s, want closed", b.State())
	}
	if v := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-success", "success")); v != 1 {
		t.Errorf("success counter = %v, want 1", v)
	}
}

func TestDo_NilBreaker(t *testing.T) {
	got, err := Do[int](nil, func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("Do(nil) = %d, %v; want 42, nil", got, err)
	}
}

func TestBreaker_OpensAfterFailureRate(t *testing.T) {
	s := DefaultSettings("test-trip")
	s.Timeout = time.Hour
	b := New(s)

	failing := func() (int, error) { return 0, errors.New("upstream 500") }
	for i := 0; i < 10; i++ {
		_, _ = Do(b, failing)
	}

	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	_, err := Do(b, func() (int, error) { return 1, nil })
	if !IsOpen(err) {
		t.Errorf("expected open-state rejection, got %v", err)
	}
	if v := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("test-trip", "rejected")); v != 1 {
		t.Errorf("rejected counter = %v, want 1", v)
	}
	if v := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("test-trip")); v != 2 {
		t.Errorf("state gauge = %v, want 2", v)
	}
}

func TestBreaker_StaysClosedBelowMinimum(t *testing.T) {
	b := New(DefaultSettings("test-below-min"))

	for i := 0; i < 9; i++ {
		_, _ = Do(b, func() (int, error) { return 0, errors.New("fail") })
	}

	if b.State() != "closed" {
		t.Errorf("state = %s, want closed", b.State())
	}
}

func TestStateToString(t *testing.T) {
	tests := map[gobreaker.State]string{
		gobreaker.StateClosed:   "closed",
		gobreaker.StateHalfOpen: "half-open",
		gobreaker.StateOpen:     "open",
		gobreaker.State(99):     "unknown",
	}
	for state, want := range tests {
		if got := stateToString(state); got != want {
			t.Errorf("stateToString(%v) = %q, want %q", state, got, want)
		}
	}
}
