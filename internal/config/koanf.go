// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ludographus/config.yaml",
	"/etc/ludographus/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: override any setting
//
// The loaded config is validated before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Environment variables have the highest priority. The transform maps
	// STEAM_API_KEY -> steam.api_key, COLLECTOR_INTERVAL -> collector.interval, etc.
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envAliases maps legacy/short environment variable names to config paths.
var envAliases = map[string]string{
	"DB_PATH":       "database.path",
	"DUCKDB_PATH":   "database.path",
	"CACHE_PATH":    "cache.path",
	"LOG_LEVEL":     "logging.level",
	"LOG_FORMAT":    "logging.format",
	"HTTP_PORT":     "server.port",
	"HTTP_HOST":     "server.host",
	"STEAM_API_KEY": "steam.api_key",
}

// envSections are the recognized config section prefixes. Environment
// variables outside these sections (PATH, HOME, ...) are ignored.
var envSections = []string{
	"STEAM_", "DATABASE_", "CACHE_", "COLLECTOR_", "SCORING_", "SERVER_", "LOGGING_",
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Returning an empty string drops the variable.
//
// Examples:
//   - STEAM_REQUEST_DELAY -> steam.request_delay
//   - COLLECTOR_TOP_GAMES_LIMIT -> collector.top_games_limit
//   - SCORING_PLAYER_COUNT_CEILING -> scoring.player_count_ceiling
func envTransformFunc(key string) string {
	if path, ok := envAliases[key]; ok {
		return path
	}

	for _, section := range envSections {
		if strings.HasPrefix(key, section) {
			prefix := strings.ToLower(strings.TrimSuffix(section, "_"))
			rest := strings.ToLower(strings.TrimPrefix(key, section))
			if rest == "" {
				return ""
			}
			return prefix + "." + rest
		}
	}

	return ""
}
