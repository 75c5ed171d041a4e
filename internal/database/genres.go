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

// EnsureGenre returns the id of the named genre, creating it if it does
// not exist. The UNIQUE constraint on name guarantees at most one id per
// genre even when two writers race.
func (db *DB) EnsureGenre(ctx context.Context, name string) (int64, error) {
	var id int64
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM genres WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up genre %q: %w", name, err)
	}

	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO genres (name) VALUES (?)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create genre %q: %w", name, err)
	}
	return id, nil
}

// LinkGenres records the genre membership of an app at a capture
// timestamp. Existing links for the same capture are left untouched, so
// re-runs are idempotent.
func (db *DB) LinkGenres(ctx context.Context, appID int64, genres []string, capturedAt time.Time) error {
	for _, name := range genres {
		if name == "" {
			continue
		}
		genreID, err := db.EnsureGenre(ctx, name)
		if err != nil {
			return err
		}
		_, err = db.conn.ExecContext(ctx,
			`INSERT INTO game_genres (appid, genre_id, captured_at) VALUES (?, ?, ?)
			 ON CONFLICT (appid, genre_id, captured_at) DO NOTHING`,
			appID, genreID, capturedAt)
		if err != nil {
			return fmt.Errorf("failed to link app %d to genre %q: %w", appID, name, err)
		}
	}
	return nil
}

// Genres returns all known genres ordered by name.
func (db *DB) Genres(ctx context.Context) ([]models.Genre, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}
	defer closeQuietly(rows)

	var genres []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}
