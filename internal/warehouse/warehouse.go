// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/postwise/internal/config"
	"github.com/tomtom215/postwise/internal/logging"
	"github.com/tomtom215/postwise/internal/metrics"
)

// defaultQueryTimeout bounds queries whose context carries no deadline.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection and provides the warehouse operations.
type DB struct {
	conn     *sql.DB
	cfg      *config.WarehouseConfig
	lookback time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// Open opens (or creates) the warehouse and initializes the schema.
// An empty cfg.Path opens an in-memory database.
func Open(cfg *config.WarehouseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	} else if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create warehouse directory %s: %w", dir, err)
		}
	}

	connStr := fmt.Sprintf("%s?threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false", path, numThreads)
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	lookbackDays := cfg.LookbackDays
	if lookbackDays <= 0 {
		lookbackDays = 30
	}

	db := &DB{
		conn:     conn,
		cfg:      cfg,
		lookback: time.Duration(lookbackDays) * 24 * time.Hour,
		now:      time.Now,
		logger:   logging.WithComponent("warehouse"),
	}

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize warehouse: %w", err)
	}

	db.logger.Info().Str("path", path).Int("lookback_days", lookbackDays).Msg("Warehouse opened")
	return db, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies the connection is usable.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

func (db *DB) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultQueryTimeout)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS interactions (
		interaction_id VARCHAR PRIMARY KEY,
		user_id        VARCHAR NOT NULL,
		artisan_id     VARCHAR NOT NULL,
		product_id     VARCHAR NOT NULL,
		category       VARCHAR NOT NULL DEFAULT '',
		action_type    VARCHAR NOT NULL,
		session_id     VARCHAR NOT NULL,
		device_type    VARCHAR NOT NULL,
		occurred_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_category ON interactions(category, occurred_at)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_artisan ON interactions(artisan_id, occurred_at)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id                   VARCHAR PRIMARY KEY,
		product              VARCHAR NOT NULL,
		category             VARCHAR NOT NULL,
		best_time_to_post    VARCHAR NOT NULL,
		expected_improvement VARCHAR NOT NULL,
		payload              VARCHAR NOT NULL,
		created_at           TIMESTAMP NOT NULL
	)`,
}

// ensureContext applies the default timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// observe records query latency and errors for an operation.
func observe(operation string, start time.Time, err error) {
	metrics.RecordWarehouseQuery(operation, time.Since(start), err)
}

func closeQuietly(c interface{ Close() error }) {
	if err := c.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		logging.Warn().Err(err).Msg("close warehouse connection")
	}
}
