// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

// Package besttime recommends when an artisan seller should post a product
// on social media.
//
// # Architecture
//
// Three independent signals are gathered concurrently and merged by a
// weighted vote:
//
//   - Engagement: the seller's own recent posts (likes + comments + saves),
//     bucketed by hour and weekday
//   - Cultural: a generative model's view of seasonal, regional and festival
//     demand in India
//   - Historical: recorded marketplace interactions for the category
//
// Each adapter is failure-tolerant. Missing credentials, upstream errors,
// timeouts and unparseable responses are replaced by a fixed fallback
// signal tagged with its Provenance, so an analysis always completes.
//
// # Aggregation
//
// Each weekday scores the weight of every signal that recommends it
// (engagement 50, cultural 30, historical 20 by default). Days scoring
// above zero are ranked, ties in Monday..Sunday order, and the top three
// kept. The best-time string is "<first two days> | <first time slot>",
// where time slots are the order-preserving union of engagement, cultural
// and historical slots. Empty parts default to "Friday-Sunday" and
// "7:00pm-10:00pm".
//
// # Usage
//
//	analyzer, err := besttime.NewAnalyzer(besttime.DefaultConfig(), igClient, generator, warehouse, logger)
//	rec := analyzer.Analyze(ctx, "Brass Ganesh Idol", "Spiritual Items",
//	    []string{"brass", "ganesh", "idol"}, nil)
//	// rec.BestTimeToPost == "Saturday, Sunday | 18:00-19:00" when every signal falls back
//
// # Thread Safety
//
// Analyzer keeps no per-request state. Each Analyze call is independent.
package besttime
