// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// InitSchema creates all tables and sequences if they do not exist.
// A failure here is fatal: the process must not start against a database
// it cannot write to.
func (db *DB) InitSchema() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// tableCreationQueries returns the schema DDL.
func tableCreationQueries() []string {
	return []string{
		// Telemetry snapshots. One row per app per capture timestamp; the
		// composite key makes re-runs of the same capture idempotent.
		`CREATE TABLE IF NOT EXISTS games (
			appid BIGINT NOT NULL,
			name TEXT NOT NULL,
			current_players BIGINT NOT NULL DEFAULT 0,
			peak_players BIGINT NOT NULL DEFAULT 0,
			release_date DATE,
			developer TEXT,
			publisher TEXT,
			categories TEXT,
			review_score DOUBLE,
			price_usd DOUBLE NOT NULL DEFAULT 0,
			languages TEXT,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, captured_at)
		)`,

		`CREATE SEQUENCE IF NOT EXISTS genres_id_seq`,

		// Genre dimension. Names are unique; ids come from the sequence.
		`CREATE TABLE IF NOT EXISTS genres (
			id BIGINT PRIMARY KEY DEFAULT nextval('genres_id_seq'),
			name TEXT NOT NULL UNIQUE
		)`,

		// Time-scoped genre assignments, so genre membership history is
		// preserved across captures.
		`CREATE TABLE IF NOT EXISTS game_genres (
			appid BIGINT NOT NULL,
			genre_id BIGINT NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, genre_id, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS genre_benchmarks (
			genre TEXT NOT NULL,
			total_games BIGINT NOT NULL,
			total_peak_players BIGINT NOT NULL,
			avg_player_count DOUBLE NOT NULL,
			avg_review_score DOUBLE NOT NULL,
			avg_price DOUBLE NOT NULL,
			market_activity DOUBLE NOT NULL,
			community_engagement DOUBLE NOT NULL,
			dlc_adoption_rate DOUBLE NOT NULL,
			sentiment_score DOUBLE NOT NULL,
			computed_at TIMESTAMP NOT NULL,
			PRIMARY KEY (genre, computed_at)
		)`,

		`CREATE TABLE IF NOT EXISTS achievements (
			appid BIGINT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			global_percent DOUBLE NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, name, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS price_history (
			appid BIGINT NOT NULL,
			initial_cents BIGINT NOT NULL,
			final_cents BIGINT NOT NULL,
			discount_percent INTEGER NOT NULL,
			currency TEXT NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS player_history (
			appid BIGINT NOT NULL,
			player_count BIGINT NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS game_news (
			appid BIGINT NOT NULL,
			title TEXT NOT NULL,
			contents TEXT,
			url TEXT,
			published_at TIMESTAMP NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, title, published_at)
		)`,

		`CREATE TABLE IF NOT EXISTS user_reviews (
			appid BIGINT NOT NULL,
			review_score INTEGER NOT NULL,
			review_score_desc TEXT,
			total_positive BIGINT NOT NULL,
			total_negative BIGINT NOT NULL,
			total_reviews BIGINT NOT NULL,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS community_stats (
			appid BIGINT NOT NULL,
			workshop_items BIGINT NOT NULL DEFAULT 0,
			trading_cards BIGINT NOT NULL DEFAULT 0,
			forum_topics BIGINT NOT NULL DEFAULT 0,
			forum_posts BIGINT NOT NULL DEFAULT 0,
			group_members BIGINT NOT NULL DEFAULT 0,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS market_data (
			appid BIGINT NOT NULL,
			card_price DOUBLE,
			card_volume BIGINT,
			item_price DOUBLE,
			item_volume BIGINT,
			trend TEXT,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, captured_at)
		)`,

		`CREATE TABLE IF NOT EXISTS system_requirements (
			appid BIGINT NOT NULL,
			platform TEXT NOT NULL,
			minimum TEXT,
			recommended TEXT,
			captured_at TIMESTAMP NOT NULL,
			PRIMARY KEY (appid, platform, captured_at)
		)`,

		// Latest descriptive detail per app. Unlike the history tables this
		// is keyed by appid alone: descriptions are overwritten, not
		// accumulated.
		`CREATE TABLE IF NOT EXISTS extended_game_details (
			appid BIGINT PRIMARY KEY,
			short_description TEXT,
			detailed_description TEXT,
			header_image_url TEXT,
			background_image_url TEXT,
			website_url TEXT,
			support_url TEXT,
			support_email TEXT,
			controller_support TEXT,
			dlc_count INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_games_captured_at ON games (captured_at)`,
		`CREATE INDEX IF NOT EXISTS idx_game_genres_genre ON game_genres (genre_id, captured_at)`,
		`CREATE INDEX IF NOT EXISTS idx_benchmarks_computed_at ON genre_benchmarks (computed_at)`,
	}
}
