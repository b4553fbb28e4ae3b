// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/postwise/internal/config"
	"github.com/tomtom215/postwise/internal/metrics"
	"github.com/tomtom215/postwise/internal/warehouse"
)

// Bus modes.
const (
	ModeMemory   = "memory"
	ModeNATS     = "nats"
	ModeEmbedded = "embedded"
	ModeDisabled = "disabled"
)

// ErrClosed is returned when publishing on a closed bus.
var ErrClosed = errors.New("events: bus is closed")

// Bus publishes events and hands out subscribers for the configured
// transport.
//
// Thread Safety: Safe for concurrent use.
type Bus struct {
	mode      string
	cfg       config.EventsConfig
	url       string
	publisher message.Publisher
	memory    *gochannel.GoChannel
	server    *EmbeddedServer
	logger    watermill.LoggerAdapter

	mu          sync.Mutex
	subscribers []message.Subscriber
	closed      bool
}

// NewBus opens the transport selected by cfg.Mode. Mode "disabled" is an
// error; callers use Direct instead.
func NewBus(ctx context.Context, cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	b := &Bus{mode: cfg.Mode, cfg: *cfg, url: cfg.URL, logger: logger}

	switch cfg.Mode {
	case ModeMemory:
		b.memory = gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger)
		b.publisher = b.memory
		return b, nil

	case ModeEmbedded:
		srv, err := StartEmbeddedServer(cfg.Host, cfg.Port, cfg.StoreDir)
		if err != nil {
			return nil, err
		}
		b.server = srv
		b.url = srv.ClientURL()
		logger.Info("Embedded NATS server started", watermill.LogFields{"url": b.url})

	case ModeNATS:

	case ModeDisabled:
		return nil, errors.New("events: bus is disabled")

	default:
		return nil, fmt.Errorf("events: unknown mode %q", cfg.Mode)
	}

	if err := ensureStream(ctx, b.url); err != nil {
		b.shutdownServer()
		return nil, err
	}
	pub, err := newNATSPublisher(b.url, logger)
	if err != nil {
		b.shutdownServer()
		return nil, err
	}
	b.publisher = pub
	return b, nil
}

// Mode returns the transport mode.
func (b *Bus) Mode() string {
	return b.mode
}

// Subscriber returns a subscriber for topic. The bus closes it on Close.
func (b *Bus) Subscriber(topic string) (message.Subscriber, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	if b.memory != nil {
		return b.memory, nil
	}

	sub, err := newNATSSubscriber(b.url, topic, &b.cfg, b.logger)
	if err != nil {
		return nil, err
	}
	b.subscribers = append(b.subscribers, sub)
	return sub, nil
}

// Publish sends msg on topic. For JetStream the message UUID doubles as
// the Nats-Msg-Id so redelivered publishes are deduplicated.
func (b *Bus) Publish(_ context.Context, topic string, msg *message.Message) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if b.memory == nil && msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.RecordEventPublished(topic)
	return nil
}

// InteractionTracked publishes an interaction. Defaults (ID, session,
// device, timestamp) are filled in first so the caller can report the ID.
func (b *Bus) InteractionTracked(ctx context.Context, in *warehouse.Interaction) error {
	in.Normalize(time.Now())
	msg, err := newMessage(in.ID, in)
	if err != nil {
		return err
	}
	return b.Publish(ctx, TopicInteractionTracked, msg)
}

// RecommendationGenerated publishes a recommendation.
func (b *Bus) RecommendationGenerated(ctx context.Context, ev *RecommendationGenerated) error {
	msg, err := newMessage(ev.ID, ev)
	if err != nil {
		return err
	}
	return b.Publish(ctx, TopicRecommendationGenerated, msg)
}

// Close closes subscribers, the publisher and any embedded server.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	subs := b.subscribers
	b.subscribers = nil
	b.mu.Unlock()

	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	b.shutdownServer()
	return errors.Join(errs...)
}

func (b *Bus) shutdownServer() {
	if b.server != nil {
		b.server.Shutdown()
		b.server = nil
	}
}
