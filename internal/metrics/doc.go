// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8000/metrics

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

Best-time analysis:
  - besttime_signal_total{source,provenance}
  - besttime_signal_duration_seconds{source}
  - besttime_analyses_total{result}

Outbound providers:
  - circuit_breaker_state{name}
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}
  - gemini_cache_requests_total{result}

Events and storage:
  - events_published_total{topic}
  - events_consumed_total{topic,result}
  - warehouse_query_duration_seconds{operation}
  - warehouse_query_errors_total{operation}

# Usage

	start := time.Now()
	perf, err := store.Performance(ctx, category)
	metrics.RecordWarehouseQuery("performance", time.Since(start), err)
*/
package metrics
