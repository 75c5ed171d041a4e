// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package steam provides the rate-limited client for the Steam Web and
// storefront APIs.
//
// Rate limiting: a shared token limiter enforces the configured minimum
// delay before every request that counts against the upstream limit. On an
// HTTP 429 the client sleeps a fixed cooldown once and retries the same
// request exactly once; a second 429 surfaces as a *FetchError. There is no
// fetch fan-out anywhere in the pipeline; the upstream rate limit is the
// binding constraint, so parallelism would not help throughput.
//
// Listing pagination is cursor-based with defensive loop detection: the
// client drops entity IDs it has already seen and terminates when a cursor
// repeats, a page yields nothing new, or the result limit is reached.
package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/metrics"
	"github.com/ludographus/ludographus/internal/models"
)

// maxErrorBodySize bounds how much of an error response body is read for
// diagnostics.
const maxErrorBodySize = 16 * 1024

// API is the client surface the collector consumes. Implemented by *Client
// for production, *BreakerClient for circuit-breaker protection, and by
// fakes in tests.
type API interface {
	GetMostPlayed(ctx context.Context, limit int) ([]models.GameSummary, error)
	GetAppDetails(ctx context.Context, appID int64) (*models.GameDetail, error)
	GetAchievements(ctx context.Context, appID int64) ([]models.Achievement, error)
	GetNews(ctx context.Context, appID int64) ([]models.NewsItem, error)
	GetReviewSummary(ctx context.Context, appID int64) (*models.ReviewSummary, error)
	GetPlayerCount(ctx context.Context, appID int64) (*models.PlayerCount, error)
}

// Client handles communication with the Steam APIs. Safe for concurrent
// use, though the collection pipeline is strictly sequential.
type Client struct {
	webAPIURL string
	storeURL  string
	apiKey    string
	client    *http.Client

	// limiter enforces the minimum inter-request delay shared by all
	// rate-limited calls.
	limiter *rate.Limiter

	// cooldown is the fixed wait after an HTTP 429 before the single retry.
	cooldown time.Duration

	pageSize      int
	newsCount     int
	newsMaxLength int
}

// New creates a Steam API client from configuration.
func New(cfg *config.SteamConfig) *Client {
	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}
	return &Client{
		webAPIURL: cfg.WebAPIURL,
		storeURL:  cfg.StoreURL,
		apiKey:    cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:       rate.NewLimiter(limit, 1),
		cooldown:      cfg.RateLimitCooldown,
		pageSize:      cfg.PageSize,
		newsCount:     cfg.NewsCount,
		newsMaxLength: cfg.NewsMaxLength,
	}
}

// doRateLimited performs a GET with the shared minimum delay and the
// single-retry 429 policy. The caller owns the response body on success.
func (c *Client) doRateLimited(ctx context.Context, op, reqURL string) (*http.Response, error) {
	resp, err := c.doOnce(ctx, op, reqURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		return resp, nil
	}
	_ = resp.Body.Close()

	// Throttled: wait the fixed cooldown once, then retry the same request
	// exactly once. The wait is cancellable.
	logging.Warn().Str("operation", op).Dur("cooldown", c.cooldown).Msg("Rate limited, waiting before single retry")
	metrics.APIRateLimitRetries.Inc()
	select {
	case <-time.After(c.cooldown):
	case <-ctx.Done():
		return nil, &FetchError{Operation: op, Err: ctx.Err()}
	}

	resp, err = c.doOnce(ctx, op, reqURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		_ = resp.Body.Close()
		metrics.APIRequestErrors.WithLabelValues(op, "rate_limit").Inc()
		return nil, &FetchError{
			Operation:  op,
			StatusCode: http.StatusTooManyRequests,
			Err:        fmt.Errorf("still throttled after %s cooldown retry", c.cooldown),
		}
	}
	return resp, nil
}

// doOnce issues one GET after waiting for the shared rate limiter.
func (c *Client) doOnce(ctx context.Context, op, reqURL string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Operation: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &FetchError{Operation: op, Err: fmt.Errorf("build request: %w", err)}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestErrors.WithLabelValues(op, "transport").Inc()
		return nil, &FetchError{Operation: op, Err: err}
	}
	return resp, nil
}

// getJSON performs a rate-limited GET and decodes a 200 response into
// result. Any other status becomes a *FetchError carrying a body snippet.
func (c *Client) getJSON(ctx context.Context, op, reqURL string, result interface{}) error {
	resp, err := c.doRateLimited(ctx, op, reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.APIRequestErrors.WithLabelValues(op, "status").Inc()
		return &FetchError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", readBodyForError(resp.Body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.APIRequestErrors.WithLabelValues(op, "decode").Inc()
		return &FetchError{Operation: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// readBodyForError reads at most maxErrorBodySize bytes of a response body
// for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		body = append(body, []byte("... (truncated)")...)
	}
	return body
}
