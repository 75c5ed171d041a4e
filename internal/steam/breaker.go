// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package steam

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/metrics"
	"github.com/ludographus/ludographus/internal/models"
)

// BreakerClient wraps a Client with a circuit breaker so a degraded Steam
// API fails fast instead of stalling every collection cycle on timeouts.
//
// The breaker uses real time (via sony/gobreaker) for its interval and
// timeout calculations; unit tests should exercise the wrapped client
// directly rather than wait out breaker state transitions.
type BreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
}

// NewBreakerClient creates a Steam client with circuit breaker protection.
// The circuit opens after a 60% failure rate over at least 10 requests,
// resets its counts every minute while closed, and waits 2 minutes before
// probing recovery with up to 3 half-open requests.
func NewBreakerClient(client *Client) *BreakerClient {
	metrics.BreakerState.Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        "steam-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.BreakerState.Set(stateToFloat(to))
		},
	})

	return &BreakerClient{client: client, cb: cb}
}

// execute runs one API call under the breaker and records the outcome.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.BreakerRequests.WithLabelValues("rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.BreakerRequests.WithLabelValues("failure").Inc()
		}
		return nil, err
	}
	metrics.BreakerRequests.WithLabelValues("success").Inc()
	return result, nil
}

// castResult safely type-casts the breaker result with error checking.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// GetMostPlayed bypasses the breaker: the listing fetch is the single call
// that decides whether a collection run proceeds at all, and its rate-limit
// retry already bounds how long it can block.
func (bc *BreakerClient) GetMostPlayed(ctx context.Context, limit int) ([]models.GameSummary, error) {
	return bc.client.GetMostPlayed(ctx, limit)
}

// GetAppDetails fetches storefront details with circuit breaker protection.
func (bc *BreakerClient) GetAppDetails(ctx context.Context, appID int64) (*models.GameDetail, error) {
	return castResult[models.GameDetail](bc.execute(func() (interface{}, error) {
		return bc.client.GetAppDetails(ctx, appID)
	}))
}

// GetAchievements fetches achievement percentages with circuit breaker protection.
func (bc *BreakerClient) GetAchievements(ctx context.Context, appID int64) ([]models.Achievement, error) {
	result, err := bc.execute(func() (interface{}, error) {
		return bc.client.GetAchievements(ctx, appID)
	})
	if err != nil {
		return nil, err
	}
	typed, ok := result.([]models.Achievement)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetNews fetches app news with circuit breaker protection.
func (bc *BreakerClient) GetNews(ctx context.Context, appID int64) ([]models.NewsItem, error) {
	result, err := bc.execute(func() (interface{}, error) {
		return bc.client.GetNews(ctx, appID)
	})
	if err != nil {
		return nil, err
	}
	typed, ok := result.([]models.NewsItem)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetReviewSummary fetches review statistics with circuit breaker protection.
func (bc *BreakerClient) GetReviewSummary(ctx context.Context, appID int64) (*models.ReviewSummary, error) {
	result, err := bc.execute(func() (interface{}, error) {
		return bc.client.GetReviewSummary(ctx, appID)
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	typed, ok := result.(*models.ReviewSummary)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// GetPlayerCount fetches the concurrent player count with circuit breaker protection.
func (bc *BreakerClient) GetPlayerCount(ctx context.Context, appID int64) (*models.PlayerCount, error) {
	return castResult[models.PlayerCount](bc.execute(func() (interface{}, error) {
		return bc.client.GetPlayerCount(ctx, appID)
	}))
}
