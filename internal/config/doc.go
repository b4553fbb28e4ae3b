// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package config provides centralized configuration management for Postwise.

# Configuration Sources

Configuration is layered with Koanf v2, lowest priority first:
  - Built-in defaults (defaultConfig)
  - YAML file: CONFIG_PATH, else config.yaml / config.yml / /etc/postwise/config.yaml
  - Environment variables (explicit mapping; unmapped variables are ignored)

# Environment Variables

Providers:
  - INSTAGRAM_ACCESS_TOKEN, INSTAGRAM_BUSINESS_ACCOUNT_ID: Graph API credentials
  - GOOGLE_API_KEY or GEMINI_API_KEY: generative model key
  - GEMINI_MODEL: model name (default: gemini-2.0-flash)

Missing provider credentials are not an error: the affected signal falls
back to its documented default estimate.

Server and storage:
  - HTTP_PORT / PORT: listen port (default: 8000)
  - DUCKDB_PATH: warehouse file (default: in-memory)
  - CACHE_PATH, CACHE_TTL: Badger response cache (default: in-memory, 6h)
  - EVENTS_MODE: memory, nats, embedded or disabled (default: memory)
  - NATS_URL, NATS_STORE_DIR: NATS transport settings

Security and logging:
  - AUTH_MODE: none or jwt; JWT_SECRET (min 32 chars in jwt mode)
  - CORS_ORIGINS: comma-separated list
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
