// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package config holds application configuration loaded via Koanf v2 from
// layered sources: built-in defaults, an optional YAML config file, and
// environment variables (highest priority).
package config

import (
	"time"
)

// Config holds all application configuration.
//
// Sections:
//   - Steam: upstream platform API (credentials, endpoints, rate limiting)
//   - Database: DuckDB storage (path, memory, threads)
//   - Cache: durable response cache (BadgerDB)
//   - Collector: collection schedule and listing limits
//   - Scoring: benchmark normalization ceilings and composite weights
//   - Server: read-only HTTP API
//   - Logging: log level and output format
type Config struct {
	Steam     SteamConfig     `koanf:"steam"`
	Database  DatabaseConfig  `koanf:"database"`
	Cache     CacheConfig     `koanf:"cache"`
	Collector CollectorConfig `koanf:"collector"`
	Scoring   ScoringConfig   `koanf:"scoring"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// SteamConfig configures access to the Steam Web and store APIs.
type SteamConfig struct {
	// APIKey authenticates against the Steam Web API. Required.
	APIKey string `koanf:"api_key"`

	// WebAPIURL is the base URL for the Steam Web API
	// (charts, achievements, news, player counts).
	WebAPIURL string `koanf:"web_api_url"`

	// StoreURL is the base URL for the Steam storefront API
	// (app details, reviews, pricing).
	StoreURL string `koanf:"store_url"`

	// RequestDelay is the minimum delay enforced before every request
	// that counts against the shared upstream rate limit.
	RequestDelay time.Duration `koanf:"request_delay"`

	// RateLimitCooldown is how long to wait after an HTTP 429 before the
	// single retry of the same request.
	RateLimitCooldown time.Duration `koanf:"rate_limit_cooldown"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `koanf:"timeout"`

	// PageSize is the number of listing entries requested per page.
	PageSize int `koanf:"page_size"`

	// NewsCount and NewsMaxLength bound the per-app news fetch.
	NewsCount     int `koanf:"news_count"`
	NewsMaxLength int `koanf:"news_max_length"`
}

// DatabaseConfig configures the DuckDB snapshot store.
type DatabaseConfig struct {
	// Path is the database file location. Empty means in-memory
	// (used by tests only).
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads sets DuckDB worker threads. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// CacheConfig configures the durable detail-payload cache.
type CacheConfig struct {
	// Path is the BadgerDB directory. Empty means in-memory (tests only).
	Path string `koanf:"path"`

	// SyncWrites flushes every write to disk. Slower but loses at most
	// the in-flight entry on a crash.
	SyncWrites bool `koanf:"sync_writes"`
}

// CollectorConfig configures the collection run schedule.
type CollectorConfig struct {
	// Enabled toggles the collection loop. When disabled the process only
	// serves the read API over previously persisted data.
	Enabled bool `koanf:"enabled"`

	// Interval between collection runs.
	Interval time.Duration `koanf:"interval"`

	// Lookback is the trailing window used by benchmark aggregation.
	Lookback time.Duration `koanf:"lookback"`

	// TopGamesLimit bounds how many listing entries are collected per run.
	TopGamesLimit int `koanf:"top_games_limit"`

	// RunOnStartup triggers an immediate run before the first interval tick.
	RunOnStartup bool `koanf:"run_on_startup"`
}

// ScoringConfig holds the benchmark normalization ceilings and composite
// score weights. These are policy constants with tunable overrides, not
// derived values.
type ScoringConfig struct {
	// PlayerCountCeiling is the assumed maximum average peak player count;
	// means are clamped here before scaling to 0-100.
	PlayerCountCeiling float64 `koanf:"player_count_ceiling"`

	// PriceCeiling is the assumed maximum average price in USD.
	PriceCeiling float64 `koanf:"price_ceiling"`

	// Composite score weights. Each pair must sum to 1.
	MarketReviewWeight     float64 `koanf:"market_review_weight"`
	MarketPriceWeight      float64 `koanf:"market_price_weight"`
	CommunityPlayersWeight float64 `koanf:"community_players_weight"`
	CommunityReviewWeight  float64 `koanf:"community_review_weight"`
	DLCPlayersWeight       float64 `koanf:"dlc_players_weight"`
	DLCPriceWeight         float64 `koanf:"dlc_price_weight"`
	SentimentReviewWeight  float64 `koanf:"sentiment_review_weight"`
	SentimentPlayersWeight float64 `koanf:"sentiment_players_weight"`
}

// ServerConfig configures the read-only HTTP API.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// StalenessThreshold marks snapshots older than this as "stale" in
	// API responses instead of erroring.
	StalenessThreshold time.Duration `koanf:"staleness_threshold"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Steam: SteamConfig{
			APIKey:            "",
			WebAPIURL:         "https://api.steampowered.com",
			StoreURL:          "https://store.steampowered.com",
			RequestDelay:      1200 * time.Millisecond,
			RateLimitCooldown: 60 * time.Second,
			Timeout:           30 * time.Second,
			PageSize:          100,
			NewsCount:         5,
			NewsMaxLength:     300,
		},
		Database: DatabaseConfig{
			Path:      "/data/ludographus.duckdb",
			MaxMemory: "2GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Cache: CacheConfig{
			Path:       "/data/detail-cache",
			SyncWrites: true,
		},
		Collector: CollectorConfig{
			Enabled:       true,
			Interval:      time.Hour,
			Lookback:      24 * time.Hour,
			TopGamesLimit: 100,
			RunOnStartup:  true,
		},
		Scoring: ScoringConfig{
			PlayerCountCeiling:     1_000_000,
			PriceCeiling:           100,
			MarketReviewWeight:     0.7,
			MarketPriceWeight:      0.3,
			CommunityPlayersWeight: 0.8,
			CommunityReviewWeight:  0.2,
			DLCPlayersWeight:       0.5,
			DLCPriceWeight:         0.5,
			SentimentReviewWeight:  0.8,
			SentimentPlayersWeight: 0.2,
		},
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8417,
			Timeout:            30 * time.Second,
			StalenessThreshold: 2 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
