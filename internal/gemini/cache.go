// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/postwise/internal/config"
	"github.com/tomtom215/postwise/internal/metrics"
)

const cacheKeyPrefix = "gemini:"

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// cachedEntry is the stored form of a response.
type cachedEntry struct {
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenCacheDB opens the Badger database backing the response cache. An
// empty path runs in memory.
func OpenCacheDB(cfg *config.CacheConfig) (*badger.DB, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.Path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	return db, nil
}

// CachedGenerator wraps a Generator with a Badger response cache. Entries
// expire after the configured TTL. Cache failures are logged and the
// wrapped generator is called instead.
type CachedGenerator struct {
	next     Generator
	db       *badger.DB
	model    string
	ttl      time.Duration
	validate func(text string) error
	logger   zerolog.Logger
}

// NewCachedGenerator wraps next. model is mixed into the cache key so a
// model change never serves stale answers.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCachedGenerator(next Generator, db *badger.DB, model string, ttl time.Duration, logger zerolog.Logger) *CachedGenerator {
	return &CachedGenerator{
		next:   next,
		db:     db,
		model:  model,
		ttl:    ttl,
		logger: logger.With().Str("component", "gemini_cache").Logger(),
	}
}

// WithValidator makes the cache store only responses for which validate
// returns nil. Rejected responses are still returned to the caller.
func (g *CachedGenerator) WithValidator(validate func(text string) error) *CachedGenerator {
	g.validate = validate
	return g
}

// Generate returns a cached response for prompt, or calls the wrapped
// generator and stores a successful result.
func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := g.key(prompt)

	text, err := g.lookup(key)
	switch {
	case err == nil:
		metrics.RecordCacheLookup("hit")
		return text, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		metrics.RecordCacheLookup("miss")
	default:
		metrics.RecordCacheLookup("error")
		g.logger.Warn().Err(err).Msg("cache lookup failed")
	}

	text, err = g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	if g.validate != nil {
		if verr := g.validate(text); verr != nil {
			g.logger.Debug().Err(verr).Int("response_len", len(text)).Msg("response not cached")
			return text, nil
		}
	}

	if err := g.store(key, text); err != nil {
		g.logger.Warn().Err(err).Msg("cache write failed")
	}
	return text, nil
}

func (g *CachedGenerator) key(prompt string) []byte {
	sum := sha256.Sum256([]byte(g.model + "\x00" + prompt))
	return []byte(cacheKeyPrefix + hex.EncodeToString(sum[:]))
}

func (g *CachedGenerator) lookup(key []byte) (string, error) {
	var entry cachedEntry
	err := g.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return "", err
	}
	return entry.Text, nil
}

func (g *CachedGenerator) store(key []byte, text string) error {
	data, err := json.Marshal(cachedEntry{Text: text, Model: g.model, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	return g.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, data)
		if g.ttl > 0 {
			e = e.WithTTL(g.ttl)
		}
		return txn.SetEntry(e)
	})
}
