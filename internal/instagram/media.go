// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package instagram

import (
	"fmt"
	"time"
)

// Timestamp layouts returned by the Graph API. The API uses an offset
// without a colon (e.g. 2024-05-10T19:30:00+0000).
var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// Media is one post from the business account's media edge.
type Media struct {
	ID            string    `json:"id"`
	Caption       string    `json:"caption"`
	MediaType     string    `json:"media_type"`
	Timestamp     string    `json:"timestamp"`
	LikeCount     int       `json:"like_count"`
	CommentsCount int       `json:"comments_count"`
	Permalink     string    `json:"permalink,omitempty"`
	Insights      *Insights `json:"insights,omitempty"`
}

// Insights is the nested insights edge requested through field expansion.
type Insights struct {
	Data []Insight `json:"data"`
}

// Insight is a single named metric.
type Insight struct {
	Name   string         `json:"name"`
	Values []InsightValue `json:"values"`
}

// InsightValue holds a lifetime metric value.
type InsightValue struct {
	Value int `json:"value"`
}

// Insight returns the first value of the named insight metric, or 0 when absent.
func (m *Media) Insight(name string) int {
	if m.Insights == nil {
		return 0
	}
	for _, in := range m.Insights.Data {
		if in.Name == name && len(in.Values) > 0 {
			return in.Values[0].Value
		}
	}
	return 0
}

// PostedAt parses the publication timestamp.
func (m *Media) PostedAt() (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("media %s: unparseable timestamp %q", m.ID, m.Timestamp)
}

// mediaPage is the paged response of the media edge.
type mediaPage struct {
	Data []Media `json:"data"`
}

// graphError is the Graph API error envelope.
type graphError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// idResponse is returned by container creation and publish calls.
type idResponse struct {
	ID string `json:"id"`
}
