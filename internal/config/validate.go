// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid.
// Missing upstream credentials are a fatal startup condition, not a
// retryable one: validation failures abort before any external call.
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateCollector(); err != nil {
		return err
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

// validateSteam validates upstream API configuration. The API key is only
// required when the collector is enabled; a read-only deployment can run
// without credentials.
func (c *Config) validateSteam() error {
	if c.Collector.Enabled && c.Steam.APIKey == "" {
		return fmt.Errorf("STEAM_API_KEY is required when the collector is enabled")
	}
	if !strings.HasPrefix(c.Steam.WebAPIURL, "http://") && !strings.HasPrefix(c.Steam.WebAPIURL, "https://") {
		return fmt.Errorf("steam.web_api_url must start with http:// or https://, got %q", c.Steam.WebAPIURL)
	}
	if !strings.HasPrefix(c.Steam.StoreURL, "http://") && !strings.HasPrefix(c.Steam.StoreURL, "https://") {
		return fmt.Errorf("steam.store_url must start with http:// or https://, got %q", c.Steam.StoreURL)
	}
	if c.Steam.RequestDelay < 0 {
		return fmt.Errorf("steam.request_delay must not be negative")
	}
	if c.Steam.RateLimitCooldown <= 0 {
		return fmt.Errorf("steam.rate_limit_cooldown must be positive")
	}
	if c.Steam.PageSize <= 0 {
		return fmt.Errorf("steam.page_size must be positive, got %d", c.Steam.PageSize)
	}
	return nil
}

// validateCollector validates the collection schedule.
func (c *Config) validateCollector() error {
	if !c.Collector.Enabled {
		return nil
	}
	if c.Collector.Interval <= 0 {
		return fmt.Errorf("collector.interval must be positive")
	}
	if c.Collector.Lookback <= 0 {
		return fmt.Errorf("collector.lookback must be positive")
	}
	if c.Collector.TopGamesLimit <= 0 {
		return fmt.Errorf("collector.top_games_limit must be positive, got %d", c.Collector.TopGamesLimit)
	}
	return nil
}

// validateScoring validates normalization ceilings and composite weights.
// Each weight pair must sum to 1 so composite scores stay within 0-100.
func (c *Config) validateScoring() error {
	s := c.Scoring
	if s.PlayerCountCeiling <= 0 {
		return fmt.Errorf("scoring.player_count_ceiling must be positive")
	}
	if s.PriceCeiling <= 0 {
		return fmt.Errorf("scoring.price_ceiling must be positive")
	}

	pairs := []struct {
		name string
		a, b float64
	}{
		{"market", s.MarketReviewWeight, s.MarketPriceWeight},
		{"community", s.CommunityPlayersWeight, s.CommunityReviewWeight},
		{"dlc", s.DLCPlayersWeight, s.DLCPriceWeight},
		{"sentiment", s.SentimentReviewWeight, s.SentimentPlayersWeight},
	}
	for _, p := range pairs {
		if p.a < 0 || p.b < 0 {
			return fmt.Errorf("scoring.%s weights must not be negative", p.name)
		}
		if sum := p.a + p.b; sum < 0.999 || sum > 1.001 {
			return fmt.Errorf("scoring.%s weights must sum to 1, got %g", p.name, sum)
		}
	}
	return nil
}

// validateServer validates the HTTP server configuration.
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	return nil
}

// validateLogging validates log level and format.
func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error, fatal, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
