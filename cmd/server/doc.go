// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package main is the entry point for the Postwise server.

Postwise recommends when an artisan seller should post a product on
Instagram. It combines the seller's own engagement history from the
Instagram Graph API, a cultural and seasonal reading from Gemini, and
historical interaction data from a DuckDB warehouse into ranked posting
hours, days and a combined schedule.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("postwise")
	├── MessagingSupervisor ("messaging-layer")
	│   └── Event router (interaction and recommendation consumers)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Provider clients: Instagram Graph and Gemini, each behind a circuit breaker
 4. Generative cache: Badger, keyed by model and prompt
 5. Warehouse: DuckDB interactions and recommendations
 6. Analyzer: engagement, cultural and historical adapters plus aggregation
 7. Authentication: JWT or no-auth mode
 8. Event bus: Watermill over gochannel, NATS JetStream or embedded NATS
 9. HTTP Server: Chi router with middleware stack

# Configuration

	# Server
	PORT=8000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Providers
	INSTAGRAM_ACCESS_TOKEN=<token>
	INSTAGRAM_BUSINESS_ACCOUNT_ID=<id>
	GEMINI_API_KEY=<key>         # GOOGLE_API_KEY is also accepted

	# Storage
	WAREHOUSE_ENABLED=true
	DUCKDB_PATH=/data/postwise.duckdb
	CACHE_PATH=/data/cache

	# Events
	EVENTS_MODE=memory           # memory, nats, embedded, disabled
	NATS_URL=nats://127.0.0.1:4222

	# Authentication
	AUTH_MODE=none               # none or jwt
	JWT_SECRET=<32+ chars>

Missing provider credentials never stop the server: analysis degrades to
the default engagement estimate and the fallback cultural signal.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (SHUTDOWN_TIMEOUT)
 3. Stops the event router and closes the bus
 4. Closes the warehouse and the generative cache
 5. Reports any services that failed to stop
*/
package main
