// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package benchmark

import (
	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/models"
)

// genreAggregate holds the raw per-genre aggregates before scoring.
type genreAggregate struct {
	totalGames       int64
	totalPeakPlayers int64
	avgPlayerCount   float64
	avgReviewScore   float64
	avgPrice         float64
}

// aggregate computes the raw statistics for one genre group. Averages
// exclude games with no value for that metric (zero players, missing or
// zero review score, free games) so a handful of gaps does not drag the
// genre mean toward zero. A metric with no values at all averages to 0.
func aggregate(group []models.GameSnapshot) genreAggregate {
	agg := genreAggregate{totalGames: int64(len(group))}

	var (
		playerSum   float64
		playerCount int
		reviewSum   float64
		reviewCount int
		priceSum    float64
		priceCount  int
	)
	for _, snap := range group {
		agg.totalPeakPlayers += snap.PeakPlayers
		if snap.PeakPlayers > 0 {
			playerSum += float64(snap.PeakPlayers)
			playerCount++
		}
		if snap.ReviewScore != nil && *snap.ReviewScore > 0 {
			reviewSum += *snap.ReviewScore
			reviewCount++
		}
		if snap.PriceUSD > 0 {
			priceSum += snap.PriceUSD
			priceCount++
		}
	}

	if playerCount > 0 {
		agg.avgPlayerCount = playerSum / float64(playerCount)
	}
	if reviewCount > 0 {
		agg.avgReviewScore = reviewSum / float64(reviewCount)
	}
	if priceCount > 0 {
		agg.avgPrice = priceSum / float64(priceCount)
	}
	return agg
}

// score converts raw aggregates into the four composite benchmark values,
// each on a 0-100 scale.
//
// Player counts and prices are clamped to their configured ceilings before
// scaling so a single outlier cannot saturate a composite. Review scores
// are already 0-100 and are used as-is.
func score(agg genreAggregate, cfg *config.ScoringConfig) (market, community, dlc, sentiment float64) {
	playerNorm := normalize(agg.avgPlayerCount, cfg.PlayerCountCeiling)
	priceNorm := normalize(agg.avgPrice, cfg.PriceCeiling)
	reviewNorm := clamp(agg.avgReviewScore, 0, 100)

	market = cfg.MarketReviewWeight*reviewNorm + cfg.MarketPriceWeight*priceNorm
	community = cfg.CommunityPlayersWeight*playerNorm + cfg.CommunityReviewWeight*reviewNorm
	dlc = cfg.DLCPlayersWeight*playerNorm + cfg.DLCPriceWeight*priceNorm
	sentiment = cfg.SentimentReviewWeight*reviewNorm + cfg.SentimentPlayersWeight*playerNorm
	return market, community, dlc, sentiment
}

// normalize clamps value to [0, ceiling] and scales it to 0-100.
func normalize(value, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	return clamp(value, 0, ceiling) / ceiling * 100
}

func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
