// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package cache provides the durable response cache mapping an app ID to
// its last successfully fetched detail payload. The cache bounds upstream
// API cost across collection cycles; correctness never depends on a hit,
// a cold cache only makes a run slower.
//
// Backed by BadgerDB for crash durability: with SyncWrites enabled a crash
// between cycles loses at most the in-flight entry. The cache is an
// explicit dependency constructed in main and passed into the collector,
// never ambient global state.
package cache

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/metrics"
	"github.com/ludographus/ludographus/internal/models"
)

// detailKeyPrefix namespaces detail payload entries in BadgerDB.
const detailKeyPrefix = "detail:"

// Cache is a durable app-ID -> detail-payload store.
type Cache struct {
	db *badger.DB
}

// New opens the cache at cfg.Path. An empty path opens an in-memory
// instance (tests only; loses durability).
func New(cfg *config.CacheConfig) (*Cache, error) {
	var opts badger.Options
	if cfg.Path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	// Badger logs through its own interface; route it to zerolog.
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open detail cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached detail payload for appID, or (nil, false) on a
// miss. A stored entry that no longer decodes is treated as a miss and
// will be overwritten by the next Put; it is never surfaced as an error.
func (c *Cache) Get(appID int64) (*models.GameDetail, bool) {
	var detail models.GameDetail

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(detailKey(appID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &detail)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			logging.Debug().Int64("appid", appID).Err(err).Msg("Malformed cache entry treated as miss")
		}
		metrics.CacheMisses.Inc()
		return nil, false
	}

	// Wrong shape (e.g. an entry written by an older build) is a miss too.
	if detail.AppID != appID {
		metrics.CacheMisses.Inc()
		return nil, false
	}

	metrics.CacheHits.Inc()
	return &detail, true
}

// Put stores the detail payload for appID, overwriting any previous entry.
func (c *Cache) Put(appID int64, detail *models.GameDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal detail for appid %d: %w", appID, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(detailKey(appID), data)
	})
	if err != nil {
		return fmt.Errorf("store detail for appid %d: %w", appID, err)
	}
	return nil
}

// Close flushes and closes the underlying store.
func (c *Cache) Close() error {
	return c.db.Close()
}

// detailKey builds the BadgerDB key for an app's detail entry.
func detailKey(appID int64) []byte {
	return []byte(detailKeyPrefix + strconv.FormatInt(appID, 10))
}

// badgerLogger adapts badger's logger interface to zerolog.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Trace().Msgf("badger: "+format, args...)
}
