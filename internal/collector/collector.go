// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package collector orchestrates collection cycles: fetch the most-played
// listing, enrich each entry with storefront details, persist snapshots and
// per-category detail, then recompute genre benchmarks.
package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ludographus/ludographus/internal/benchmark"
	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/metrics"
	"github.com/ludographus/ludographus/internal/models"
	"github.com/ludographus/ludographus/internal/steam"
)

// Store is the persistence surface a collection cycle writes through.
type Store interface {
	UpsertSnapshot(ctx context.Context, snap *models.GameSnapshot) error
	LinkGenres(ctx context.Context, appID int64, genres []string, capturedAt time.Time) error
	UpsertPriceSnapshot(ctx context.Context, appID int64, price *models.PriceSnapshot, capturedAt time.Time) error
	UpsertPlayerCount(ctx context.Context, appID int64, count *models.PlayerCount, capturedAt time.Time) error
	UpsertAchievements(ctx context.Context, appID int64, achievements []models.Achievement, capturedAt time.Time) error
	UpsertNews(ctx context.Context, appID int64, items []models.NewsItem, capturedAt time.Time) error
	UpsertReviewSummary(ctx context.Context, appID int64, summary *models.ReviewSummary, capturedAt time.Time) error
	UpsertCommunityStats(ctx context.Context, appID int64, stats *models.CommunityStats, capturedAt time.Time) error
	UpsertMarketData(ctx context.Context, appID int64, md *models.MarketData, capturedAt time.Time) error
	UpsertSystemRequirements(ctx context.Context, appID int64, reqs []models.SystemRequirements, capturedAt time.Time) error
	UpsertExtendedDetail(ctx context.Context, appID int64, detail *models.ExtendedDetail, capturedAt time.Time) error
}

// DetailCache is the durable response cache consulted before every
// storefront detail fetch.
type DetailCache interface {
	Get(appID int64) (*models.GameDetail, bool)
	Put(appID int64, detail *models.GameDetail) error
}

// Scorer recomputes genre benchmarks after a cycle persists its snapshots.
type Scorer interface {
	Compute(ctx context.Context, since time.Time) (*benchmark.Report, error)
}

// RunReport summarizes one collection cycle.
type RunReport struct {
	RunID     uuid.UUID
	Total     int
	Succeeded int
	Failed    int
	CacheHits int
	Results   []models.EntityResult
	Benchmark *benchmark.Report
	StartedAt time.Time
	Duration  time.Duration
}

// Collector runs collection cycles sequentially: one listing fetch, then
// one entity at a time, then one benchmark computation.
type Collector struct {
	api    steam.API
	store  Store
	cache  DetailCache
	scorer Scorer
	cfg    *config.CollectorConfig
	now    func() time.Time
}

// New creates a collector.
func New(api steam.API, store Store, cache DetailCache, scorer Scorer, cfg *config.CollectorConfig) *Collector {
	return &Collector{
		api:    api,
		store:  store,
		cache:  cache,
		scorer: scorer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Run executes one collection cycle. A listing failure aborts the cycle;
// a failure on any single entity is recorded in the report and the cycle
// moves on to the next entity.
func (c *Collector) Run(ctx context.Context) (*RunReport, error) {
	started := c.now()
	capturedAt := started.UTC().Truncate(time.Second)
	runID := uuid.New()

	summaries, err := c.api.GetMostPlayed(ctx, c.cfg.TopGamesLimit)
	if err != nil {
		metrics.CollectionRuns.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to fetch most-played listing: %w", err)
	}

	logging.Info().
		Stringer("run_id", runID).
		Int("games", len(summaries)).
		Time("captured_at", capturedAt).
		Msg("Collection cycle started")

	report := &RunReport{RunID: runID, Total: len(summaries), StartedAt: started}
	for _, summary := range summaries {
		if err := ctx.Err(); err != nil {
			metrics.CollectionRuns.WithLabelValues("cancelled").Inc()
			return report, err
		}

		result := c.processEntity(ctx, summary, capturedAt)
		report.Results = append(report.Results, result)
		if result.CacheHit {
			report.CacheHits++
		}
		if result.OK() {
			report.Succeeded++
		} else {
			report.Failed++
			metrics.EntitiesSkipped.WithLabelValues(string(result.Stage)).Inc()
			logging.Warn().
				Err(result.Err).
				Int64("appid", result.AppID).
				Str("stage", string(result.Stage)).
				Msg("Entity skipped")
		}
	}

	benchReport, err := c.scorer.Compute(ctx, capturedAt.Add(-c.cfg.Lookback))
	if err != nil {
		metrics.CollectionRuns.WithLabelValues("failure").Inc()
		return report, fmt.Errorf("benchmark computation failed: %w", err)
	}
	report.Benchmark = benchReport

	report.Duration = c.now().Sub(started)
	metrics.CollectionRuns.WithLabelValues("success").Inc()
	metrics.CollectionDuration.Observe(report.Duration.Seconds())

	logging.Info().
		Stringer("run_id", runID).
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Int("cache_hits", report.CacheHits).
		Dur("duration", report.Duration).
		Msg("Collection cycle complete")
	return report, nil
}

// processEntity collects one game: resolve its detail payload (cache or
// API), persist the snapshot and genre links, then persist each optional
// detail category in its own transaction.
func (c *Collector) processEntity(ctx context.Context, summary models.GameSummary, capturedAt time.Time) models.EntityResult {
	result := models.EntityResult{AppID: summary.AppID}

	detail, hit := c.cache.Get(summary.AppID)
	result.CacheHit = hit
	if !hit {
		var err error
		detail, err = c.api.GetAppDetails(ctx, summary.AppID)
		if err != nil {
			result.Stage = models.StageDetailFetch
			result.Err = err
			return result
		}
		if err := c.cache.Put(summary.AppID, detail); err != nil {
			// A cache write failure costs a refetch next cycle, nothing more.
			logging.Warn().Err(err).Int64("appid", summary.AppID).Msg("Failed to cache detail payload")
		}
	}
	result.Name = detail.Name

	snap := buildSnapshot(summary, detail, capturedAt)
	if err := c.store.UpsertSnapshot(ctx, snap); err != nil {
		result.Stage = models.StageSnapshot
		result.Err = err
		return result
	}

	if err := c.store.LinkGenres(ctx, summary.AppID, detail.Genres, capturedAt); err != nil {
		result.Stage = models.StageGenres
		result.Err = err
		return result
	}

	if errs := c.persistExtended(ctx, summary.AppID, detail, capturedAt); len(errs) > 0 {
		// Category failures degrade the entity, they do not fail it: the
		// snapshot and genre links above are already durable.
		result.Stage = models.StageExtended
		result.CategoryErrors = errs
	}
	return result
}

// persistExtended fetches and persists the optional detail categories.
// Each category is isolated: its own fetch, its own transaction, its own
// error slot in the returned map.
func (c *Collector) persistExtended(ctx context.Context, appID int64, detail *models.GameDetail, capturedAt time.Time) map[string]error {
	errs := make(map[string]error)
	record := func(category string, err error) {
		if err != nil {
			metrics.ExtendedDetailErrors.WithLabelValues(category).Inc()
			logging.Debug().Err(err).Int64("appid", appID).Str("category", category).Msg("Detail category failed")
			errs[category] = err
		}
	}

	if detail.Price != nil {
		record("price", c.store.UpsertPriceSnapshot(ctx, appID, detail.Price, capturedAt))
	}
	if detail.Extended != nil {
		record("extended", c.store.UpsertExtendedDetail(ctx, appID, detail.Extended, capturedAt))
	}
	if detail.Community != nil {
		record("community", c.store.UpsertCommunityStats(ctx, appID, detail.Community, capturedAt))
	} else {
		logging.Debug().Int64("appid", appID).Msg("No community stats in detail payload, skipping category")
	}
	if detail.Market != nil {
		record("market", c.store.UpsertMarketData(ctx, appID, detail.Market, capturedAt))
	} else {
		logging.Debug().Int64("appid", appID).Msg("No market data in detail payload, skipping category")
	}
	if len(detail.Requirements) > 0 {
		record("requirements", c.store.UpsertSystemRequirements(ctx, appID, detail.Requirements, capturedAt))
	}

	if achievements, err := c.api.GetAchievements(ctx, appID); err != nil {
		record("achievements", err)
	} else if len(achievements) > 0 {
		record("achievements", c.store.UpsertAchievements(ctx, appID, achievements, capturedAt))
	}

	if news, err := c.api.GetNews(ctx, appID); err != nil {
		record("news", err)
	} else if len(news) > 0 {
		record("news", c.store.UpsertNews(ctx, appID, news, capturedAt))
	}

	if summary, err := c.api.GetReviewSummary(ctx, appID); err != nil {
		record("reviews", err)
	} else if summary != nil {
		record("reviews", c.store.UpsertReviewSummary(ctx, appID, summary, capturedAt))
	}

	if count, err := c.api.GetPlayerCount(ctx, appID); err != nil {
		record("player_count", err)
	} else if count != nil {
		record("player_count", c.store.UpsertPlayerCount(ctx, appID, count, capturedAt))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// buildSnapshot merges listing metrics with the detail payload into one
// persistable snapshot row.
func buildSnapshot(summary models.GameSummary, detail *models.GameDetail, capturedAt time.Time) *models.GameSnapshot {
	return &models.GameSnapshot{
		AppID:          summary.AppID,
		Name:           detail.Name,
		CurrentPlayers: summary.CurrentPlayers,
		PeakPlayers:    summary.PeakPlayers,
		ReleaseDate:    models.NormalizeReleaseDate(detail.ReleaseDate),
		Developer:      models.First(detail.Developers),
		Publisher:      models.First(detail.Publishers),
		Genres:         detail.Genres,
		Categories:     detail.Categories,
		ReviewScore:    detail.ReviewScore,
		PriceUSD:       detail.PriceUSD,
		Languages:      detail.Languages,
		CapturedAt:     capturedAt,
	}
}
