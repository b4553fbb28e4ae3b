// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package warehouse stores marketplace interactions and generated
recommendations in DuckDB and answers the analytical questions built on
them.

It is the historical store for best-time analysis: Performance ranks the
hours and weekdays in which a category's products drew the most clicks
over the lookback window, and returns besttime.ErrNoHistory when nothing
was recorded.

Tables:

	interactions      one row per view, click, inquiry or purchase
	recommendations   one row per successful best-time analysis

Timestamps are stored in UTC. Hour and weekday buckets are therefore UTC
buckets.

Operations:
  - RecordInteraction: insert a tracked interaction
  - Performance: category best hours, best days and aggregate stats
  - Timing: an artisan's top day/hour slots with posting advice
  - RecordRecommendation / RecentRecommendations: analysis history

Every query records warehouse_query_duration_seconds and, on failure,
warehouse_query_errors_total labelled by operation.
*/
package warehouse
