// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"
)

func TestSlogHandler_Enabled(t *testing.T) {
	tests := []struct {
		name        string
		loggerLevel zerolog.Level
		slogLevel   slog.Level
		want        bool
	}{
		{"debug logger accepts debug", zerolog.DebugLevel, slog.LevelDebug, true},
		{"info logger rejects debug", zerolog.InfoLevel, slog.LevelDebug, false},
		{"info logger accepts warn", zerolog.InfoLevel, slog.LevelWarn, true},
		{"error logger rejects warn", zerolog.ErrorLevel, slog.LevelWarn, false},
	}

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer Init(DefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(tt.loggerLevel))
			if got := h.Enabled(context.Background(), tt.slogLevel); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf)))

	logger.Warn("supervisor restart",
		slog.String("service", "http-server"),
		slog.Int("attempt", 2),
		slog.Bool("backoff", true),
		slog.Duration("wait", 15*time.Second),
	)

	output := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"service":"http-server"`,
		`"attempt":2`,
		`"backoff":true`,
		"supervisor restart",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandler(zerolog.New(&buf))).
		With(slog.String("tree", "postwise")).
		WithGroup("svc")

	logger.Info("started", slog.String("name", "events-router"))

	output := buf.String()
	if !strings.Contains(output, `"svc.tree":"postwise"`) && !strings.Contains(output, `"tree":"postwise"`) {
		t.Errorf("expected pre-configured attr, got: %s", output)
	}
	if !strings.Contains(output, `"svc.name":"events-router"`) {
		t.Errorf("expected grouped key, got: %s", output)
	}
}

func TestAddAttr_NestedGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	event := logger.Info()

	event = addAttr(event, slog.Group("outer", slog.Group("inner", slog.Int("n", 3))), nil)
	event.Msg("")

	if !strings.Contains(buf.String(), `"outer.inner.n":3`) {
		t.Errorf("expected nested key, got: %s", buf.String())
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWatermillLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	logger := NewWatermillLogger("events")
	logger.Info("subscriber ready", watermill.LogFields{"topic": "interactions.tracked"})

	output := buf.String()
	if !strings.Contains(output, `"component":"events"`) {
		t.Errorf("expected component field, got: %s", output)
	}
	if !strings.Contains(output, "subscriber ready") {
		t.Errorf("expected message, got: %s", output)
	}
}
