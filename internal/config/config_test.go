// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Steam.APIKey = "test-key"
	return cfg
}

func TestDefaultConfigValues(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Steam.WebAPIURL != "https://api.steampowered.com" {
		t.Errorf("WebAPIURL = %q", cfg.Steam.WebAPIURL)
	}
	if cfg.Steam.StoreURL != "https://store.steampowered.com" {
		t.Errorf("StoreURL = %q", cfg.Steam.StoreURL)
	}
	if cfg.Steam.RateLimitCooldown != 60*time.Second {
		t.Errorf("RateLimitCooldown = %v", cfg.Steam.RateLimitCooldown)
	}
	if cfg.Collector.Interval != time.Hour {
		t.Errorf("Interval = %v", cfg.Collector.Interval)
	}
	if cfg.Collector.TopGamesLimit != 100 {
		t.Errorf("TopGamesLimit = %d", cfg.Collector.TopGamesLimit)
	}
	if cfg.Scoring.PlayerCountCeiling != 1_000_000 {
		t.Errorf("PlayerCountCeiling = %v", cfg.Scoring.PlayerCountCeiling)
	}
	if cfg.Scoring.PriceCeiling != 100 {
		t.Errorf("PriceCeiling = %v", cfg.Scoring.PriceCeiling)
	}
	if cfg.Server.Port != 8417 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Server.StalenessThreshold != 2*time.Hour {
		t.Errorf("StalenessThreshold = %v", cfg.Server.StalenessThreshold)
	}
}

func TestDefaultConfigValidatesWithKey(t *testing.T) {
	t.Parallel()

	if err := validConfig().Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing api key with collector enabled",
			mutate:  func(c *Config) { c.Steam.APIKey = "" },
			wantErr: "STEAM_API_KEY",
		},
		{
			name: "missing api key allowed read-only",
			mutate: func(c *Config) {
				c.Steam.APIKey = ""
				c.Collector.Enabled = false
			},
		},
		{
			name:    "bad web api url",
			mutate:  func(c *Config) { c.Steam.WebAPIURL = "api.steampowered.com" },
			wantErr: "web_api_url",
		},
		{
			name:    "bad store url",
			mutate:  func(c *Config) { c.Steam.StoreURL = "ftp://store" },
			wantErr: "store_url",
		},
		{
			name:    "negative request delay",
			mutate:  func(c *Config) { c.Steam.RequestDelay = -time.Second },
			wantErr: "request_delay",
		},
		{
			name:    "zero cooldown",
			mutate:  func(c *Config) { c.Steam.RateLimitCooldown = 0 },
			wantErr: "rate_limit_cooldown",
		},
		{
			name:    "zero interval",
			mutate:  func(c *Config) { c.Collector.Interval = 0 },
			wantErr: "collector.interval",
		},
		{
			name: "collector limits ignored when disabled",
			mutate: func(c *Config) {
				c.Collector.Enabled = false
				c.Collector.Interval = 0
				c.Collector.TopGamesLimit = 0
			},
		},
		{
			name:    "zero top games limit",
			mutate:  func(c *Config) { c.Collector.TopGamesLimit = 0 },
			wantErr: "top_games_limit",
		},
		{
			name:    "zero player ceiling",
			mutate:  func(c *Config) { c.Scoring.PlayerCountCeiling = 0 },
			wantErr: "player_count_ceiling",
		},
		{
			name: "market weights do not sum to 1",
			mutate: func(c *Config) {
				c.Scoring.MarketReviewWeight = 0.7
				c.Scoring.MarketPriceWeight = 0.7
			},
			wantErr: "market weights",
		},
		{
			name: "negative sentiment weight",
			mutate: func(c *Config) {
				c.Scoring.SentimentReviewWeight = 1.2
				c.Scoring.SentimentPlayersWeight = -0.2
			},
			wantErr: "sentiment weights",
		},
		{
			name: "weights within tolerance",
			mutate: func(c *Config) {
				c.Scoring.DLCPlayersWeight = 0.5004
				c.Scoring.DLCPriceWeight = 0.4999
			},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "zero server timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "server.timeout",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"STEAM_API_KEY", "steam.api_key"},
		{"STEAM_REQUEST_DELAY", "steam.request_delay"},
		{"COLLECTOR_TOP_GAMES_LIMIT", "collector.top_games_limit"},
		{"SCORING_PLAYER_COUNT_CEILING", "scoring.player_count_ceiling"},
		{"DB_PATH", "database.path"},
		{"LOG_LEVEL", "logging.level"},
		{"HTTP_PORT", "server.port"},
		{"PATH", ""},
		{"HOME", ""},
		{"STEAM_", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
