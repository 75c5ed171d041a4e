// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package models defines the domain types shared across the collection
// pipeline: listing entries, detail payloads, persisted snapshots, extended
// per-app records, and genre benchmarks.
package models

import (
	"time"
)

// GameSummary is one entry from the most-played listing.
type GameSummary struct {
	AppID          int64 `json:"appid"`
	Rank           int   `json:"rank"`
	CurrentPlayers int64 `json:"concurrent_in_game"`
	PeakPlayers    int64 `json:"peak_in_game"`
}

// GameDetail is the cacheable per-app detail payload assembled from the
// storefront API. Lists are kept in API order. ReleaseDate carries the raw
// platform string ("12 Aug, 2024", but also placeholders like "TBA");
// normalization to a date happens at persistence time.
type GameDetail struct {
	AppID       int64    `json:"appid"`
	Name        string   `json:"name"`
	ReleaseDate string   `json:"release_date"`
	Developers  []string `json:"developers"`
	Publishers  []string `json:"publishers"`
	Genres      []string `json:"genres"`
	Categories  []string `json:"categories"`

	// ReviewScore is the metacritic score on a 0-100 scale, nil when the
	// platform has none.
	ReviewScore *float64 `json:"review_score"`

	// PriceUSD is the final price in major units (dollars).
	PriceUSD float64 `json:"price_usd"`

	Languages []string `json:"languages"`

	// Optional sub-payloads extracted from the same storefront response.
	// Each is independently optional; absence of one never blocks the others.
	Price        *PriceSnapshot       `json:"price,omitempty"`
	Extended     *ExtendedDetail      `json:"extended,omitempty"`
	Community    *CommunityStats      `json:"community,omitempty"`
	Market       *MarketData          `json:"market,omitempty"`
	Requirements []SystemRequirements `json:"requirements,omitempty"`
}

// GameSnapshot is one timestamped capture of a game's observable metrics,
// the row persisted per (AppID, CapturedAt).
type GameSnapshot struct {
	AppID          int64
	Name           string
	CurrentPlayers int64
	PeakPlayers    int64

	// ReleaseDate is nil when the platform reports a placeholder
	// ("TBA", "coming soon") or an unparseable value.
	ReleaseDate *time.Time

	Developer   *string
	Publisher   *string
	Genres      []string
	Categories  []string
	ReviewScore *float64
	PriceUSD    float64
	Languages   []string
	CapturedAt  time.Time
}

// Genre is a named game category. Membership is tracked per snapshot
// timestamp so reclassification over time never rewrites history.
type Genre struct {
	ID   int64
	Name string
}

// GenreBenchmark is one aggregate row per (Genre, ComputedAt).
// All four composite scores are in [0,100]; absent inputs contribute zero.
type GenreBenchmark struct {
	Genre            string  `json:"genre"`
	TotalGames       int64   `json:"total_games"`
	TotalPeakPlayers int64   `json:"total_peak_players"`
	AvgPlayerCount   float64 `json:"avg_player_count"`
	AvgReviewScore   float64 `json:"avg_review_score"`
	AvgPrice         float64 `json:"avg_price"`

	MarketActivity      float64 `json:"market_activity_score"`
	CommunityEngagement float64 `json:"community_engagement_score"`
	DLCAdoptionRate     float64 `json:"dlc_adoption_rate"`
	SentimentScore      float64 `json:"sentiment_score"`

	ComputedAt time.Time `json:"computed_at"`
}

// Achievement is one global achievement completion stat,
// keyed (AppID, Name, CapturedAt).
type Achievement struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	GlobalPercent float64 `json:"percent"`
}

// PriceSnapshot is a point-in-time price observation in minor currency
// units, keyed (AppID, CapturedAt).
type PriceSnapshot struct {
	InitialCents    int64  `json:"initial"`
	FinalCents      int64  `json:"final"`
	DiscountPercent int    `json:"discount_percent"`
	Currency        string `json:"currency"`
}

// CommunityStats holds community signals, keyed (AppID, CapturedAt).
type CommunityStats struct {
	WorkshopItems int64 `json:"workshop_items_count"`
	TradingCards  int64 `json:"trading_cards_count"`
	ForumTopics   int64 `json:"forum_topics_count"`
	ForumPosts    int64 `json:"forum_posts_count"`
	GroupMembers  int64 `json:"group_members_count"`
}

// MarketData holds marketplace signals, keyed (AppID, CapturedAt).
// Fields are nil when the platform reports nothing for the app.
type MarketData struct {
	CardPrice  *float64 `json:"card_market_price"`
	CardVolume *int64   `json:"card_market_volume"`
	ItemPrice  *float64 `json:"item_market_price"`
	ItemVolume *int64   `json:"item_market_volume"`
	Trend      *string  `json:"market_trend"`
}

// NewsItem is one news article, keyed (AppID, URL, CapturedAt).
type NewsItem struct {
	Title       string    `json:"title"`
	Contents    string    `json:"contents"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// ReviewSummary holds aggregate user review stats, keyed (AppID, CapturedAt).
type ReviewSummary struct {
	Score         int    `json:"review_score"`
	ScoreDesc     string `json:"review_score_desc"`
	TotalPositive int64  `json:"total_positive"`
	TotalNegative int64  `json:"total_negative"`
	TotalReviews  int64  `json:"total_reviews"`
}

// SystemRequirements holds per-platform requirement text,
// keyed (AppID, Platform, CapturedAt).
type SystemRequirements struct {
	Platform    string `json:"platform"` // "windows", "mac", "linux"
	Minimum     string `json:"minimum"`
	Recommended string `json:"recommended"`
}

// PlayerCount is a point-in-time concurrent player observation,
// keyed (AppID, CapturedAt).
type PlayerCount struct {
	Count int64 `json:"player_count"`
}

// ExtendedDetail holds descriptive storefront fields,
// keyed (AppID, CapturedAt).
type ExtendedDetail struct {
	ShortDescription    string  `json:"short_description"`
	DetailedDescription string  `json:"detailed_description"`
	HeaderImageURL      string  `json:"header_image_url"`
	BackgroundImageURL  string  `json:"background_image_url"`
	WebsiteURL          string  `json:"website_url"`
	SupportURL          string  `json:"support_url"`
	SupportEmail        string  `json:"support_email"`
	ControllerSupport   string  `json:"controller_support"`
	DLCList             []int64 `json:"dlc_list"`
}
