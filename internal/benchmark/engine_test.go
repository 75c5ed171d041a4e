// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package benchmark

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/models"
)

func scoringConfig() *config.ScoringConfig {
	return &config.ScoringConfig{
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
	}
}

func snapshot(appID, peak int64, review, price float64, genres ...string) models.GameSnapshot {
	snap := models.GameSnapshot{
		AppID:       appID,
		PeakPlayers: peak,
		PriceUSD:    price,
		Genres:      genres,
	}
	if review > 0 {
		snap.ReviewScore = &review
	}
	return snap
}

type fakeSource struct {
	snapshots []models.GameSnapshot
	err       error
}

func (f *fakeSource) LatestSnapshots(ctx context.Context, since time.Time) ([]models.GameSnapshot, error) {
	return f.snapshots, f.err
}

type fakeStore struct {
	rows    []*models.GenreBenchmark
	failFor map[string]error
}

func (f *fakeStore) UpsertGenreBenchmark(ctx context.Context, b *models.GenreBenchmark) error {
	if err := f.failFor[b.Genre]; err != nil {
		return err
	}
	f.rows = append(f.rows, b)
	return nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeCompositeScores(t *testing.T) {
	t.Parallel()

	// Two Action games: peaks 100k and 300k, reviews 80 and 60, prices
	// $10 and $30. Averages: 200k players (norm 20), 70 review, $20
	// price (norm 20).
	source := &fakeSource{snapshots: []models.GameSnapshot{
		snapshot(1, 100_000, 80, 10, "Action"),
		snapshot(2, 300_000, 60, 30, "Action"),
	}}
	store := &fakeStore{}
	engine := NewEngine(source, store, scoringConfig())

	report, err := engine.Compute(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if report.GenresComputed != 1 || report.GenresFailed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(store.rows) != 1 {
		t.Fatalf("rows written = %d, want 1", len(store.rows))
	}

	row := store.rows[0]
	if row.Genre != "Action" {
		t.Errorf("Genre = %q", row.Genre)
	}
	if row.TotalGames != 2 {
		t.Errorf("TotalGames = %d, want 2", row.TotalGames)
	}
	if row.TotalPeakPlayers != 400_000 {
		t.Errorf("TotalPeakPlayers = %d, want 400000", row.TotalPeakPlayers)
	}
	if !almostEqual(row.AvgPlayerCount, 200_000) {
		t.Errorf("AvgPlayerCount = %v, want 200000", row.AvgPlayerCount)
	}
	if !almostEqual(row.AvgReviewScore, 70) {
		t.Errorf("AvgReviewScore = %v, want 70", row.AvgReviewScore)
	}
	if !almostEqual(row.AvgPrice, 20) {
		t.Errorf("AvgPrice = %v, want 20", row.AvgPrice)
	}

	if !almostEqual(row.MarketActivity, 55.0) {
		t.Errorf("MarketActivity = %v, want 55.0", row.MarketActivity)
	}
	if !almostEqual(row.CommunityEngagement, 30.0) {
		t.Errorf("CommunityEngagement = %v, want 30.0", row.CommunityEngagement)
	}
	if !almostEqual(row.DLCAdoptionRate, 20.0) {
		t.Errorf("DLCAdoptionRate = %v, want 20.0", row.DLCAdoptionRate)
	}
	if !almostEqual(row.SentimentScore, 60.0) {
		t.Errorf("SentimentScore = %v, want 60.0", row.SentimentScore)
	}
}

func TestComputeScoresStayInBounds(t *testing.T) {
	t.Parallel()

	// Outliers far beyond the ceilings must clamp, not overflow the scale,
	// and negative inputs must not drag scores below zero.
	source := &fakeSource{snapshots: []models.GameSnapshot{
		snapshot(1, 50_000_000, 100, 5000, "MMO"),
		snapshot(2, -10_000, -50, -30, "MMO"),
	}}
	store := &fakeStore{}
	engine := NewEngine(source, store, scoringConfig())

	if _, err := engine.Compute(context.Background(), time.Time{}); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	row := store.rows[0]
	for name, v := range map[string]float64{
		"market":    row.MarketActivity,
		"community": row.CommunityEngagement,
		"dlc":       row.DLCAdoptionRate,
		"sentiment": row.SentimentScore,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v, want within [0, 100]", name, v)
		}
	}
	if !almostEqual(row.CommunityEngagement, 100) {
		t.Errorf("CommunityEngagement = %v, want 100 (both factors saturated)", row.CommunityEngagement)
	}

	// Totals carry the full group, negative metrics excluded from averages.
	if row.TotalGames != int64(len(source.snapshots)) {
		t.Errorf("TotalGames = %d, want %d", row.TotalGames, len(source.snapshots))
	}
}

func TestComputeMissingMetricsAverageToZero(t *testing.T) {
	t.Parallel()

	// Free games with no review scores: every factor except players is 0.
	source := &fakeSource{snapshots: []models.GameSnapshot{
		snapshot(1, 100_000, 0, 0, "Free To Play"),
		snapshot(2, 300_000, 0, 0, "Free To Play"),
	}}
	store := &fakeStore{}
	engine := NewEngine(source, store, scoringConfig())

	if _, err := engine.Compute(context.Background(), time.Time{}); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	row := store.rows[0]
	if !almostEqual(row.AvgReviewScore, 0) || !almostEqual(row.AvgPrice, 0) {
		t.Errorf("averages = review %v, price %v, want 0", row.AvgReviewScore, row.AvgPrice)
	}
	if !almostEqual(row.MarketActivity, 0) {
		t.Errorf("MarketActivity = %v, want 0", row.MarketActivity)
	}
	// community = 0.8 * playerNorm(20) = 16
	if !almostEqual(row.CommunityEngagement, 16) {
		t.Errorf("CommunityEngagement = %v, want 16", row.CommunityEngagement)
	}
}

func TestComputeExcludesZeroValuesFromAverages(t *testing.T) {
	t.Parallel()

	// The zero-price game is excluded from the price average but still
	// counts toward totals.
	source := &fakeSource{snapshots: []models.GameSnapshot{
		snapshot(1, 100_000, 80, 0, "Action"),
		snapshot(2, 100_000, 80, 30, "Action"),
	}}
	store := &fakeStore{}
	engine := NewEngine(source, store, scoringConfig())

	if _, err := engine.Compute(context.Background(), time.Time{}); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	row := store.rows[0]
	if row.TotalGames != 2 {
		t.Errorf("TotalGames = %d, want 2", row.TotalGames)
	}
	if !almostEqual(row.AvgPrice, 30) {
		t.Errorf("AvgPrice = %v, want 30 (zero price excluded)", row.AvgPrice)
	}
}

func TestComputeIsolatesWriteFailures(t *testing.T) {
	t.Parallel()

	source := &fakeSource{snapshots: []models.GameSnapshot{
		snapshot(1, 1000, 80, 10, "Action"),
		snapshot(2, 2000, 70, 20, "Racing"),
		snapshot(3, 3000, 60, 30, "Strategy"),
	}}
	store := &fakeStore{failFor: map[string]error{"Racing": errors.New("disk full")}}
	engine := NewEngine(source, store, scoringConfig())

	report, err := engine.Compute(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if report.GenresComputed != 2 || report.GenresFailed != 1 {
		t.Errorf("report = %+v, want 2 computed, 1 failed", report)
	}
	if _, ok := report.Failures["Racing"]; !ok {
		t.Error("Failures missing Racing entry")
	}
	// Sorted order with the failure skipped.
	if len(store.rows) != 2 || store.rows[0].Genre != "Action" || store.rows[1].Genre != "Strategy" {
		t.Errorf("persisted genres wrong: %+v", store.rows)
	}
}

func TestComputeMultiGenreGameCountsInEach(t *testing.T) {
	t.Parallel()

	source := &fakeSource{snapshots: []models.GameSnapshot{
		snapshot(1, 1000, 80, 10, "Action", "Indie"),
	}}
	store := &fakeStore{}
	engine := NewEngine(source, store, scoringConfig())

	if _, err := engine.Compute(context.Background(), time.Time{}); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(store.rows) != 2 {
		t.Fatalf("rows = %d, want one per genre", len(store.rows))
	}
	for _, row := range store.rows {
		if row.TotalGames != 1 {
			t.Errorf("genre %s TotalGames = %d, want 1", row.Genre, row.TotalGames)
		}
	}
}
