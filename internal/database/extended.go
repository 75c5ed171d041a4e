// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ludographus/ludographus/internal/models"
)

// Each per-category writer below runs in its own transaction so one
// category failing to persist never rolls back the others.

// withTx runs fn inside a transaction, rolling back on error.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpsertPriceSnapshot records the price of an app at a capture timestamp.
func (db *DB) UpsertPriceSnapshot(ctx context.Context, appID int64, price *models.PriceSnapshot, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO price_history (appid, initial_cents, final_cents, discount_percent, currency, captured_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT (appid, captured_at) DO UPDATE SET
				initial_cents = EXCLUDED.initial_cents,
				final_cents = EXCLUDED.final_cents,
				discount_percent = EXCLUDED.discount_percent,
				currency = EXCLUDED.currency`,
			appID, price.InitialCents, price.FinalCents, price.DiscountPercent, price.Currency, capturedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert price for app %d: %w", appID, err)
		}
		return nil
	})
}

// UpsertPlayerCount records the concurrent player count of an app at a
// capture timestamp.
func (db *DB) UpsertPlayerCount(ctx context.Context, appID int64, count *models.PlayerCount, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO player_history (appid, player_count, captured_at)
			 VALUES (?, ?, ?)
			 ON CONFLICT (appid, captured_at) DO UPDATE SET
				player_count = EXCLUDED.player_count`,
			appID, count.Count, capturedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert player count for app %d: %w", appID, err)
		}
		return nil
	})
}

// UpsertAchievements replaces the achievement percentages captured for an
// app at a capture timestamp.
func (db *DB) UpsertAchievements(ctx context.Context, appID int64, achievements []models.Achievement, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, a := range achievements {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO achievements (appid, name, description, global_percent, captured_at)
				 VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT (appid, name, captured_at) DO UPDATE SET
					description = EXCLUDED.description,
					global_percent = EXCLUDED.global_percent`,
				appID, a.Name, a.Description, a.GlobalPercent, capturedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert achievement %q for app %d: %w", a.Name, appID, err)
			}
		}
		return nil
	})
}

// UpsertNews records news items for an app. Items already seen in earlier
// captures are skipped.
func (db *DB) UpsertNews(ctx context.Context, appID int64, items []models.NewsItem, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, n := range items {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO game_news (appid, title, contents, url, published_at, captured_at)
				 VALUES (?, ?, ?, ?, ?, ?)
				 ON CONFLICT (appid, title, published_at) DO NOTHING`,
				appID, n.Title, n.Contents, n.URL, n.PublishedAt, capturedAt)
			if err != nil {
				return fmt.Errorf("failed to insert news for app %d: %w", appID, err)
			}
		}
		return nil
	})
}

// UpsertReviewSummary records aggregate review statistics for an app at a
// capture timestamp.
func (db *DB) UpsertReviewSummary(ctx context.Context, appID int64, summary *models.ReviewSummary, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO user_reviews (appid, review_score, review_score_desc, total_positive, total_negative, total_reviews, captured_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (appid, captured_at) DO UPDATE SET
				review_score = EXCLUDED.review_score,
				review_score_desc = EXCLUDED.review_score_desc,
				total_positive = EXCLUDED.total_positive,
				total_negative = EXCLUDED.total_negative,
				total_reviews = EXCLUDED.total_reviews`,
			appID, summary.Score, summary.ScoreDesc, summary.TotalPositive, summary.TotalNegative, summary.TotalReviews, capturedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert review summary for app %d: %w", appID, err)
		}
		return nil
	})
}

// UpsertCommunityStats records community signals for an app at a capture
// timestamp.
func (db *DB) UpsertCommunityStats(ctx context.Context, appID int64, stats *models.CommunityStats, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO community_stats (appid, workshop_items, trading_cards, forum_topics, forum_posts, group_members, captured_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (appid, captured_at) DO UPDATE SET
				workshop_items = EXCLUDED.workshop_items,
				trading_cards = EXCLUDED.trading_cards,
				forum_topics = EXCLUDED.forum_topics,
				forum_posts = EXCLUDED.forum_posts,
				group_members = EXCLUDED.group_members`,
			appID, stats.WorkshopItems, stats.TradingCards, stats.ForumTopics, stats.ForumPosts, stats.GroupMembers, capturedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert community stats for app %d: %w", appID, err)
		}
		return nil
	})
}

// UpsertMarketData records marketplace signals for an app at a capture
// timestamp.
func (db *DB) UpsertMarketData(ctx context.Context, appID int64, md *models.MarketData, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO market_data (appid, card_price, card_volume, item_price, item_volume, trend, captured_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (appid, captured_at) DO UPDATE SET
				card_price = EXCLUDED.card_price,
				card_volume = EXCLUDED.card_volume,
				item_price = EXCLUDED.item_price,
				item_volume = EXCLUDED.item_volume,
				trend = EXCLUDED.trend`,
			appID, md.CardPrice, md.CardVolume, md.ItemPrice, md.ItemVolume, md.Trend, capturedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert market data for app %d: %w", appID, err)
		}
		return nil
	})
}

// UpsertSystemRequirements records per-platform system requirements for an
// app at a capture timestamp.
func (db *DB) UpsertSystemRequirements(ctx context.Context, appID int64, reqs []models.SystemRequirements, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, r := range reqs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO system_requirements (appid, platform, minimum, recommended, captured_at)
				 VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT (appid, platform, captured_at) DO UPDATE SET
					minimum = EXCLUDED.minimum,
					recommended = EXCLUDED.recommended`,
				appID, r.Platform, r.Minimum, r.Recommended, capturedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert %s requirements for app %d: %w", r.Platform, appID, err)
			}
		}
		return nil
	})
}

// UpsertExtendedDetail overwrites the latest descriptive detail for an app.
func (db *DB) UpsertExtendedDetail(ctx context.Context, appID int64, detail *models.ExtendedDetail, capturedAt time.Time) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO extended_game_details (
				appid, short_description, detailed_description, header_image_url,
				background_image_url, website_url, support_url, support_email,
				controller_support, dlc_count, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (appid) DO UPDATE SET
				short_description = EXCLUDED.short_description,
				detailed_description = EXCLUDED.detailed_description,
				header_image_url = EXCLUDED.header_image_url,
				background_image_url = EXCLUDED.background_image_url,
				website_url = EXCLUDED.website_url,
				support_url = EXCLUDED.support_url,
				support_email = EXCLUDED.support_email,
				controller_support = EXCLUDED.controller_support,
				dlc_count = EXCLUDED.dlc_count,
				updated_at = EXCLUDED.updated_at`,
			appID, detail.ShortDescription, detail.DetailedDescription, detail.HeaderImageURL,
			detail.BackgroundImageURL, detail.WebsiteURL, detail.SupportURL, detail.SupportEmail,
			detail.ControllerSupport, len(detail.DLCList), capturedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert extended detail for app %d: %w", appID, err)
		}
		return nil
	})
}
