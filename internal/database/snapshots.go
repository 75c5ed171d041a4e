// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package database

import (
	"context"
	"fmt"

	"github.com/ludographus/ludographus/internal/metrics"
	"github.com/ludographus/ludographus/internal/models"
)

// UpsertSnapshot writes one telemetry snapshot. Re-running a capture with
// the same (appid, captured_at) updates the mutable columns in place, so a
// collection cycle can be retried without duplicating rows.
func (db *DB) UpsertSnapshot(ctx context.Context, snap *models.GameSnapshot) error {
	query := `INSERT INTO games (
		appid, name, current_players, peak_players, release_date,
		developer, publisher, categories, review_score, price_usd,
		languages, captured_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (appid, captured_at) DO UPDATE SET
		name = EXCLUDED.name,
		current_players = EXCLUDED.current_players,
		peak_players = EXCLUDED.peak_players,
		release_date = EXCLUDED.release_date,
		developer = EXCLUDED.developer,
		publisher = EXCLUDED.publisher,
		categories = EXCLUDED.categories,
		review_score = EXCLUDED.review_score,
		price_usd = EXCLUDED.price_usd,
		languages = EXCLUDED.languages`

	_, err := db.conn.ExecContext(ctx, query,
		snap.AppID, snap.Name, snap.CurrentPlayers, snap.PeakPlayers, snap.ReleaseDate,
		snap.Developer, snap.Publisher, models.JoinStored(snap.Categories), snap.ReviewScore, snap.PriceUSD,
		models.JoinStored(snap.Languages), snap.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for app %d: %w", snap.AppID, err)
	}

	metrics.SnapshotsPersisted.Inc()
	return nil
}
