// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/postwise/internal/besttime"
	"github.com/tomtom215/postwise/internal/warehouse"
)

// Topics.
const (
	TopicInteractionTracked      = "interactions.tracked"
	TopicRecommendationGenerated = "recommendations.generated"
)

// Topics lists every topic the bus carries.
var Topics = []string{TopicInteractionTracked, TopicRecommendationGenerated}

// RecommendationGenerated is published after a successful analysis.
type RecommendationGenerated struct {
	ID             string                  `json:"id"`
	GeneratedAt    time.Time               `json:"generated_at"`
	Recommendation besttime.Recommendation `json:"recommendation"`
}

// Emitter announces domain events.
type Emitter interface {
	InteractionTracked(ctx context.Context, in *warehouse.Interaction) error
	RecommendationGenerated(ctx context.Context, ev *RecommendationGenerated) error
}

// Recorder persists consumed events.
type Recorder interface {
	RecordInteraction(ctx context.Context, in *warehouse.Interaction) error
	RecordRecommendation(ctx context.Context, id string, rec *besttime.Recommendation) (string, error)
}

// newMessage encodes payload as JSON under the given message UUID.
func newMessage(id string, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event %s: %w", id, err)
	}
	msg := message.NewMessage(id, data)
	msg.Metadata.Set("content_type", "application/json")
	return msg, nil
}

// DecodeInteraction decodes an interactions.tracked payload.
func DecodeInteraction(msg *message.Message) (*warehouse.Interaction, error) {
	var in warehouse.Interaction
	if err := json.Unmarshal(msg.Payload, &in); err != nil {
		return nil, fmt.Errorf("decode interaction %s: %w", msg.UUID, err)
	}
	if in.ID == "" {
		in.ID = msg.UUID
	}
	return &in, nil
}

// DecodeRecommendation decodes a recommendations.generated payload.
func DecodeRecommendation(msg *message.Message) (*RecommendationGenerated, error) {
	var ev RecommendationGenerated
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decode recommendation %s: %w", msg.UUID, err)
	}
	if ev.ID == "" {
		ev.ID = msg.UUID
	}
	return &ev, nil
}
