// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/postwise/internal/besttime"
)

// StoredRecommendation is a persisted analysis result.
type StoredRecommendation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	besttime.Recommendation
}

// MarshalJSON flattens the recommendation next to its id and timestamp.
func (s StoredRecommendation) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(s.Recommendation)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["id"] = s.ID
	fields["created_at"] = s.CreatedAt
	return json.Marshal(fields)
}

// RecordRecommendation stores a successful recommendation and returns its ID.
// Error recommendations are rejected.
func (db *DB) RecordRecommendation(ctx context.Context, id string, rec *besttime.Recommendation) (_ string, err error) {
	start := time.Now()
	defer func() { observe("record_recommendation", start, err) }()

	if rec.Failed() {
		return "", errors.New("refusing to store a failed recommendation")
	}
	if id == "" {
		id = uuid.New().String()
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal recommendation: %w", err)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO recommendations
			(id, product, category, best_time_to_post, expected_improvement, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		id, rec.Product, rec.Category, rec.BestTimeToPost, rec.ExpectedImprovement,
		string(payload), db.now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return id, nil
}

// RecentRecommendations returns up to limit stored recommendations, newest first.
func (db *DB) RecentRecommendations(ctx context.Context, limit int) (out []StoredRecommendation, err error) {
	start := time.Now()
	defer func() { observe("recent_recommendations", start, err) }()

	if limit <= 0 {
		limit = 20
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, payload, created_at
		FROM recommendations
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	out = make([]StoredRecommendation, 0, limit)
	for rows.Next() {
		var (
			s       StoredRecommendation
			payload string
		)
		if err := rows.Scan(&s.ID, &payload, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &s.Recommendation); err != nil {
			return nil, fmt.Errorf("failed to decode recommendation %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}
	return out, nil
}
