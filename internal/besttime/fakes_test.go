// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package besttime

import (
	"context"
	"sync/atomic"

	"github.com/tomtom215/postwise/internal/instagram"
)

type fakeMediaSource struct {
	configured bool
	media      []instagram.Media
	err        error
	block      bool
	lastLimit  atomic.Int32
}

func (f *fakeMediaSource) Configured() bool { return f.configured }

func (f *fakeMediaSource) RecentMedia(ctx context.Context, limit int) ([]instagram.Media, error) {
	f.lastLimit.Store(int32(limit))
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.media, f.err
}

type fakeGenerator struct {
	text       string
	err        error
	block      bool
	panics     bool
	lastPrompt atomic.Value
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt.Store(prompt)
	if f.panics {
		panic("generator exploded")
	}
	if f.block {
		// ignores ctx to prove the analyzer enforces its own deadline
		select {}
	}
	return f.text, f.err
}

type fakeStore struct {
	perf *Performance
	err  error
}

func (f *fakeStore) Performance(_ context.Context, _ string) (*Performance, error) {
	return f.perf, f.err
}

func post(id, caption, ts string, likes, comments, saved int) instagram.Media {
	m := instagram.Media{
		ID:            id,
		Caption:       caption,
		Timestamp:     ts,
		LikeCount:     likes,
		CommentsCount: comments,
	}
	if saved > 0 {
		m.Insights = &instagram.Insights{Data: []instagram.Insight{
			{Name: "reach", Values: []instagram.InsightValue{{Value: 999}}},
			{Name: "saved", Values: []instagram.InsightValue{{Value: saved}}},
		}}
	}
	return m
}
