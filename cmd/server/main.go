// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package main is the entry point for the Ludographus server.
//
// Ludographus collects live telemetry for the most-played Steam games on a
// fixed interval, persists per-capture snapshots and detail history in
// DuckDB, computes composite genre benchmarks after every cycle, and serves
// the results over a small read-only HTTP API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, config file, environment (Koanf v2)
//  2. Database: DuckDB schema for snapshots, genres, detail history, benchmarks
//  3. Detail cache: durable BadgerDB cache of storefront detail payloads
//  4. Steam client: rate-limited HTTP client behind a circuit breaker
//  5. Benchmark engine and collector
//  6. Supervisor tree: collection layer and API layer under Suture
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. STEAM_API_KEY is required when the collector is
// enabled.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the collector
// finishes or abandons its cycle, the HTTP server drains in-flight
// requests (10s timeout), then the cache and database are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ludographus/ludographus/internal/api"
	"github.com/ludographus/ludographus/internal/benchmark"
	"github.com/ludographus/ludographus/internal/cache"
	"github.com/ludographus/ludographus/internal/collector"
	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/database"
	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/steam"
	"github.com/ludographus/ludographus/internal/supervisor"
	"github.com/ludographus/ludographus/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("cache_path", cfg.Cache.Path).
		Bool("collector_enabled", cfg.Collector.Enabled).
		Dur("interval", cfg.Collector.Interval).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if err := db.InitSchema(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database schema")
	}
	logging.Info().Msg("Database initialized")

	detailCache, err := cache.New(&cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open detail cache")
	}
	defer func() {
		if err := detailCache.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing detail cache")
		}
	}()

	steamClient := steam.NewBreakerClient(steam.New(&cfg.Steam))
	engine := benchmark.NewEngine(db, db, &cfg.Scoring)
	coll := collector.New(steamClient, db, detailCache, engine, &cfg.Collector)
	manager := collector.NewManager(coll, &cfg.Collector)

	handler := api.NewHandler(db, &cfg.Server)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Collector.Enabled {
		tree.AddCollectionService(services.NewCollectorService(manager))
		logging.Info().Msg("Collector service added")
	} else {
		logging.Info().Msg("Collector disabled, serving existing data only")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context cancelled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
