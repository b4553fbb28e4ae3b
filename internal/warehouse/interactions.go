// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package warehouse

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Action types accepted for interactions.
const (
	ActionView     = "view"
	ActionClick    = "click"
	ActionInquiry  = "inquiry"
	ActionPurchase = "purchase"
)

// ActionTypes lists the valid interaction action types.
var ActionTypes = []string{ActionView, ActionClick, ActionInquiry, ActionPurchase}

// Interaction is one shopper action on an artisan's product.
type Interaction struct {
	ID         string    `json:"interaction_id"`
	UserID     string    `json:"user_id"`
	ArtisanID  string    `json:"artisan_id"`
	ProductID  string    `json:"product_id"`
	Category   string    `json:"category"`
	ActionType string    `json:"action_type"`
	SessionID  string    `json:"session_id"`
	DeviceType string    `json:"device_type"`
	OccurredAt time.Time `json:"timestamp"`
}

// Normalize fills generated and defaulted fields: a new interaction ID and
// session ID when empty, device type "web", and the current time.
func (i *Interaction) Normalize(now time.Time) {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.SessionID == "" {
		i.SessionID = uuid.New().String()
	}
	if i.DeviceType == "" {
		i.DeviceType = "web"
	}
	if i.OccurredAt.IsZero() {
		i.OccurredAt = now
	}
	i.OccurredAt = i.OccurredAt.UTC()
}

// RecordInteraction inserts an interaction. Re-recording an existing
// interaction ID is a no-op, so redelivered events are harmless.
func (db *DB) RecordInteraction(ctx context.Context, in *Interaction) (err error) {
	start := time.Now()
	defer func() { observe("record_interaction", start, err) }()

	if !slices.Contains(ActionTypes, in.ActionType) {
		return fmt.Errorf("invalid action type %q", in.ActionType)
	}
	in.Normalize(db.now())

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO interactions
			(interaction_id, user_id, artisan_id, product_id, category, action_type, session_id, device_type, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (interaction_id) DO NOTHING`,
		in.ID, in.UserID, in.ArtisanID, in.ProductID, in.Category,
		in.ActionType, in.SessionID, in.DeviceType, in.OccurredAt)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}
