// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ludographus/ludographus/internal/models"
)

// snapshotColumns is the shared SELECT list for snapshot reads: all games
// columns plus the genre names linked at the same capture timestamp.
// Genre names aggregate on the stored-list separator (chr(31)) so names
// containing commas survive the round trip.
const snapshotColumns = `
	g.appid, g.name, g.current_players, g.peak_players, g.release_date,
	g.developer, g.publisher, g.categories, g.review_score, g.price_usd,
	g.languages, g.captured_at,
	coalesce(string_agg(ge.name, chr(31) ORDER BY ge.name), '') AS genre_names`

// LatestSnapshots returns the most recent snapshot per app captured at or
// after since, ordered by peak players descending.
func (db *DB) LatestSnapshots(ctx context.Context, since time.Time) ([]models.GameSnapshot, error) {
	query := `WITH latest AS (
		SELECT appid, max(captured_at) AS captured_at
		FROM games
		WHERE captured_at >= ?
		GROUP BY appid
	)
	SELECT` + snapshotColumns + `
	FROM games g
	JOIN latest l ON g.appid = l.appid AND g.captured_at = l.captured_at
	LEFT JOIN game_genres gg ON gg.appid = g.appid AND gg.captured_at = g.captured_at
	LEFT JOIN genres ge ON ge.id = gg.genre_id
	GROUP BY ALL
	ORDER BY g.peak_players DESC, g.appid`

	rows, err := db.conn.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshots: %w", err)
	}
	defer closeQuietly(rows)

	var snapshots []models.GameSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snap)
	}
	return snapshots, rows.Err()
}

// SnapshotForApp returns the most recent snapshot for one app, or
// ErrNotFound when the app has never been captured.
func (db *DB) SnapshotForApp(ctx context.Context, appID int64) (*models.GameSnapshot, error) {
	query := `SELECT` + snapshotColumns + `
	FROM games g
	LEFT JOIN game_genres gg ON gg.appid = g.appid AND gg.captured_at = g.captured_at
	LEFT JOIN genres ge ON ge.id = gg.genre_id
	WHERE g.appid = ?
	GROUP BY ALL
	ORDER BY g.captured_at DESC
	LIMIT 1`

	rows, err := db.conn.QueryContext(ctx, query, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot for app %d: %w", appID, err)
	}
	defer closeQuietly(rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanSnapshot(rows)
}

// scanSnapshot reads one snapshot row from the shared column list.
func scanSnapshot(rows *sql.Rows) (*models.GameSnapshot, error) {
	var (
		snap        models.GameSnapshot
		releaseDate sql.NullTime
		developer   sql.NullString
		publisher   sql.NullString
		categories  sql.NullString
		reviewScore sql.NullFloat64
		languages   sql.NullString
		genreNames  string
	)
	err := rows.Scan(
		&snap.AppID, &snap.Name, &snap.CurrentPlayers, &snap.PeakPlayers, &releaseDate,
		&developer, &publisher, &categories, &reviewScore, &snap.PriceUSD,
		&languages, &snap.CapturedAt, &genreNames,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	if releaseDate.Valid {
		t := releaseDate.Time
		snap.ReleaseDate = &t
	}
	if developer.Valid && developer.String != "" {
		snap.Developer = &developer.String
	}
	if publisher.Valid && publisher.String != "" {
		snap.Publisher = &publisher.String
	}
	if reviewScore.Valid {
		snap.ReviewScore = &reviewScore.Float64
	}
	snap.Categories = models.SplitStored(categories.String)
	snap.Languages = models.SplitStored(languages.String)
	snap.Genres = models.SplitStored(genreNames)
	return &snap, nil
}

// LatestBenchmarks returns the benchmark rows from the most recent
// computation cycle, ordered by genre.
func (db *DB) LatestBenchmarks(ctx context.Context) ([]models.GenreBenchmark, error) {
	query := `WITH latest AS (
		SELECT genre, max(computed_at) AS computed_at
		FROM genre_benchmarks
		GROUP BY genre
	)
	SELECT b.genre, b.total_games, b.total_peak_players, b.avg_player_count,
		b.avg_review_score, b.avg_price, b.market_activity, b.community_engagement,
		b.dlc_adoption_rate, b.sentiment_score, b.computed_at
	FROM genre_benchmarks b
	JOIN latest l ON b.genre = l.genre AND b.computed_at = l.computed_at
	ORDER BY b.genre`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query benchmarks: %w", err)
	}
	defer closeQuietly(rows)

	var benchmarks []models.GenreBenchmark
	for rows.Next() {
		var b models.GenreBenchmark
		err := rows.Scan(
			&b.Genre, &b.TotalGames, &b.TotalPeakPlayers, &b.AvgPlayerCount,
			&b.AvgReviewScore, &b.AvgPrice, &b.MarketActivity, &b.CommunityEngagement,
			&b.DLCAdoptionRate, &b.SentimentScore, &b.ComputedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan benchmark: %w", err)
		}
		benchmarks = append(benchmarks, b)
	}
	return benchmarks, rows.Err()
}

// LatestCaptureTime returns the timestamp of the newest snapshot, or
// ErrNotFound when no data has been collected yet.
func (db *DB) LatestCaptureTime(ctx context.Context) (time.Time, error) {
	var captured sql.NullTime
	err := db.conn.QueryRowContext(ctx,
		`SELECT max(captured_at) FROM games`).Scan(&captured)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("failed to query latest capture time: %w", err)
	}
	if !captured.Valid {
		return time.Time{}, ErrNotFound
	}
	return captured.Time, nil
}
