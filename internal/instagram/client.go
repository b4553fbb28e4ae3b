// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package instagram is a small Instagram Graph API client covering the two
calls Postwise needs: reading recent media with engagement counts, and
publishing an image post through the container/publish flow.

Resilience Mechanisms:
  - Circuit Breaker: shared breaker named "instagram-graph"
  - Rate Limiting: token bucket on outbound calls plus backoff on HTTP 429
  - Context: all methods accept context for cancellation
*/
package instagram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/postwise/internal/breaker"
	"github.com/tomtom215/postwise/internal/config"
)

// ErrNotConfigured is returned when the access token or business account ID is missing.
var ErrNotConfigured = errors.New("instagram: access token or business account id not configured")

// mediaFields is the field expansion requested from the media edge.
const mediaFields = "id,caption,like_count,comments_count,timestamp,media_type,permalink,insights.metric(impressions,reach,saved)"

const maxErrorBodySize = 64 * 1024

// DefaultCaption is posted when Publish is given a blank caption.
const DefaultCaption = "✨ Check out this beautiful handmade creation! 🎨 #handmade #artisan #craft"

// Client talks to the Instagram Graph API for one business account.
//
// Thread Safety: Safe for concurrent use.
type Client struct {
	cfg            config.InstagramConfig
	client         *http.Client
	limiter        *rate.Limiter
	breaker        *breaker.Breaker
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewClient creates a Graph API client. cb may be nil.
func NewClient(cfg *config.InstagramConfig, cb *breaker.Breaker) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		cfg:            *cfg,
		client:         &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(limit, burst),
		breaker:        cb,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: time.Second,
	}
}

// Configured reports whether both credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.AccessToken != "" && c.cfg.BusinessAccountID != ""
}

// RecentMedia returns up to limit of the account's most recent posts.
func (c *Client) RecentMedia(ctx context.Context, limit int) ([]Media, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("fields", mediaFields)
	params.Set("limit", strconv.Itoa(limit))

	var page mediaPage
	if err := c.call(ctx, http.MethodGet, "media", params, &page); err != nil {
		return nil, fmt.Errorf("failed to fetch recent media: %w", err)
	}
	return page.Data, nil
}

// Publish posts an image with a caption and returns the new media ID.
// The image must be reachable by Instagram at imageURL. A blank caption is
// replaced by DefaultCaption.
func (c *Client) Publish(ctx context.Context, imageURL, caption string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	if strings.TrimSpace(caption) == "" {
		caption = DefaultCaption
	}

	form := url.Values{}
	form.Set("image_url", imageURL)
	form.Set("caption", caption)

	var container idResponse
	if err := c.call(ctx, http.MethodPost, "media", form, &container); err != nil {
		return "", fmt.Errorf("container creation failed: %w", err)
	}
	if container.ID == "" {
		return "", errors.New("container creation failed: response carried no id")
	}

	publish := url.Values{}
	publish.Set("creation_id", container.ID)

	var published idResponse
	if err := c.call(ctx, http.MethodPost, "media_publish", publish, &published); err != nil {
		return "", fmt.Errorf("publish failed: %w", err)
	}
	if published.ID == "" {
		return "", errors.New("publish failed: response carried no id")
	}
	return published.ID, nil
}

// call performs one Graph API request under rate limiting and the circuit breaker.
func (c *Client) call(ctx context.Context, method, edge string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("access_token", c.cfg.AccessToken)
	endpoint := fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimRight(c.cfg.GraphURL, "/"), c.cfg.APIVersion, c.cfg.BusinessAccountID, edge)

	_, err := breaker.Do(c.breaker, func() (struct{}, error) {
		resp, err := c.doRequestWithRateLimit(ctx, method, endpoint, params)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return struct{}{}, decodeGraphError(resp)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return struct{}{}, fmt.Errorf("failed to decode response: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

// doRequestWithRateLimit retries HTTP 429 responses with exponential backoff,
// honouring Retry-After when present.
func (c *Client) doRequestWithRateLimit(ctx context.Context, method, endpoint string, params url.Values) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := newRequest(ctx, method, endpoint, params)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				delay = time.Duration(seconds) * time.Second
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func newRequest(ctx context.Context, method, endpoint string, params url.Values) (*http.Request, error) {
	if method == http.MethodGet {
		return http.NewRequestWithContext(ctx, method, endpoint+"?"+params.Encode(), http.NoBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// decodeGraphError turns a non-200 response into an error carrying the
// Graph API message when one is present.
func decodeGraphError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		body = []byte("(failed to read response body)")
	}

	var ge graphError
	if json.Unmarshal(body, &ge) == nil && ge.Error.Message != "" {
		return fmt.Errorf("instagram API error (status %d, code %d): %s", resp.StatusCode, ge.Error.Code, ge.Error.Message)
	}
	return fmt.Errorf("instagram API error (status %d): %s", resp.StatusCode, string(body))
}
