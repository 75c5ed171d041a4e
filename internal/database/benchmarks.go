// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package database

import (
	"context"
	"fmt"

	"github.com/ludographus/ludographus/internal/models"
)

// UpsertGenreBenchmark writes one computed benchmark row. Each genre is
// written independently so one failed write never blocks the rest of the
// computation cycle.
func (db *DB) UpsertGenreBenchmark(ctx context.Context, b *models.GenreBenchmark) error {
	query := `INSERT INTO genre_benchmarks (
		genre, total_games, total_peak_players, avg_player_count,
		avg_review_score, avg_price, market_activity, community_engagement,
		dlc_adoption_rate, sentiment_score, computed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (genre, computed_at) DO UPDATE SET
		total_games = EXCLUDED.total_games,
		total_peak_players = EXCLUDED.total_peak_players,
		avg_player_count = EXCLUDED.avg_player_count,
		avg_review_score = EXCLUDED.avg_review_score,
		avg_price = EXCLUDED.avg_price,
		market_activity = EXCLUDED.market_activity,
		community_engagement = EXCLUDED.community_engagement,
		dlc_adoption_rate = EXCLUDED.dlc_adoption_rate,
		sentiment_score = EXCLUDED.sentiment_score`

	_, err := db.conn.ExecContext(ctx, query,
		b.Genre, b.TotalGames, b.TotalPeakPlayers, b.AvgPlayerCount,
		b.AvgReviewScore, b.AvgPrice, b.MarketActivity, b.CommunityEngagement,
		b.DLCAdoptionRate, b.SentimentScore, b.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert benchmark for genre %q: %w", b.Genre, err)
	}
	return nil
}
