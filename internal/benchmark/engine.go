// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package benchmark computes per-genre composite scores from the latest
// telemetry snapshots.
package benchmark

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/metrics"
	"github.com/ludographus/ludographus/internal/models"
)

// SnapshotSource provides the snapshots a computation cycle scores.
type SnapshotSource interface {
	LatestSnapshots(ctx context.Context, since time.Time) ([]models.GameSnapshot, error)
}

// BenchmarkStore persists computed benchmark rows.
type BenchmarkStore interface {
	UpsertGenreBenchmark(ctx context.Context, b *models.GenreBenchmark) error
}

// Report summarizes one computation cycle.
type Report struct {
	GenresComputed int
	GenresFailed   int
	Failures       map[string]error
}

// Engine groups snapshots by genre and writes one benchmark row per genre.
type Engine struct {
	source SnapshotSource
	store  BenchmarkStore
	cfg    *config.ScoringConfig
	now    func() time.Time
}

// NewEngine creates a benchmark engine with the given scoring weights.
func NewEngine(source SnapshotSource, store BenchmarkStore, cfg *config.ScoringConfig) *Engine {
	return &Engine{
		source: source,
		store:  store,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Compute scores every genre seen in snapshots captured at or after since.
// Genres are processed in sorted name order and each row is written
// independently, so one failed write surfaces in the report without
// blocking the remaining genres.
func (e *Engine) Compute(ctx context.Context, since time.Time) (*Report, error) {
	snapshots, err := e.source.LatestSnapshots(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots for benchmarking: %w", err)
	}

	groups := groupByGenre(snapshots)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	computedAt := e.now().UTC()
	report := &Report{Failures: make(map[string]error)}

	for _, name := range names {
		row := e.benchmarkFor(name, groups[name], computedAt)
		if err := e.store.UpsertGenreBenchmark(ctx, row); err != nil {
			logging.Error().Err(err).Str("genre", name).Msg("Failed to persist genre benchmark")
			metrics.BenchmarkWriteErrors.Inc()
			report.GenresFailed++
			report.Failures[name] = err
			continue
		}
		metrics.BenchmarksComputed.Inc()
		report.GenresComputed++
	}

	logging.Info().
		Int("genres", report.GenresComputed).
		Int("failed", report.GenresFailed).
		Int("snapshots", len(snapshots)).
		Msg("Benchmark computation complete")
	return report, nil
}

// benchmarkFor scores one genre group.
func (e *Engine) benchmarkFor(name string, group []models.GameSnapshot, computedAt time.Time) *models.GenreBenchmark {
	agg := aggregate(group)
	market, community, dlc, sentiment := score(agg, e.cfg)

	return &models.GenreBenchmark{
		Genre:               name,
		TotalGames:          agg.totalGames,
		TotalPeakPlayers:    agg.totalPeakPlayers,
		AvgPlayerCount:      agg.avgPlayerCount,
		AvgReviewScore:      agg.avgReviewScore,
		AvgPrice:            agg.avgPrice,
		MarketActivity:      market,
		CommunityEngagement: community,
		DLCAdoptionRate:     dlc,
		SentimentScore:      sentiment,
		ComputedAt:          computedAt,
	}
}

// groupByGenre buckets snapshots by genre name. A game with several genres
// contributes to each of them; a game with none is skipped.
func groupByGenre(snapshots []models.GameSnapshot) map[string][]models.GameSnapshot {
	groups := make(map[string][]models.GameSnapshot)
	for _, snap := range snapshots {
		for _, genre := range snap.Genres {
			if genre == "" {
				continue
			}
			groups[genre] = append(groups[genre], snap)
		}
	}
	return groups
}
