// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package api

// AnalyzeRequest is the body of POST /api/best-time/analyze. An absent
// hashtags field defaults to keywords; an explicit empty list matches every
// post.
type AnalyzeRequest struct {
	ProductName string   `json:"product_name" validate:"required,notblank,max=200"`
	Category    string   `json:"category" validate:"required,notblank,max=100"`
	Keywords    []string `json:"keywords" validate:"required,min=1,max=20,dive,notblank"`
	Hashtags    []string `json:"hashtags" validate:"omitempty,max=30"`
}

// TrackInteractionRequest is the body of POST /api/analytics/track-interaction.
type TrackInteractionRequest struct {
	UserID     string `json:"user_id" validate:"required,notblank,max=128"`
	ArtisanID  string `json:"artisan_id" validate:"required,notblank,max=128"`
	ProductID  string `json:"product_id" validate:"required,notblank,max=128"`
	Category   string `json:"category" validate:"max=100"`
	ActionType string `json:"action_type" validate:"required,oneof=view click inquiry purchase"`
	SessionID  string `json:"session_id" validate:"max=128"`
	DeviceType string `json:"device_type" validate:"max=32"`
}

// PublishRequest is the body of POST /api/instagram/publish.
type PublishRequest struct {
	ImageURL string `json:"image_url" validate:"required,http_url"`
	Caption  string `json:"caption" validate:"max=2200"`
}

// trackInteractionResponse and publishResponse are flat, unlike Response.
type trackInteractionResponse struct {
	Status        string `json:"status"`
	InteractionID string `json:"interaction_id"`
}

type publishResponse struct {
	Status  string `json:"status"`
	MediaID string `json:"media_id"`
}

// bestTimeHealth is the body of GET /api/best-time/health.
type bestTimeHealth struct {
	Status              string `json:"status"`
	InstagramConfigured bool   `json:"instagram_configured"`
	GeminiConfigured    bool   `json:"gemini_configured"`
	Service             string `json:"service"`
}
