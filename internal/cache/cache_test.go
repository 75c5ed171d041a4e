// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package cache

import (
	"testing"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/models"
)

func testCache(t *testing.T) *Cache {
	t.Helper()

	c, err := New(&config.CacheConfig{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	score := 83.0
	detail := &models.GameDetail{
		AppID:       730,
		Name:        "Counter-Strike 2",
		ReleaseDate: "21 Aug, 2012",
		Developers:  []string{"Valve"},
		Genres:      []string{"Action", "FPS"},
		ReviewScore: &score,
		PriceUSD:    0,
		Languages:   []string{"English", "German"},
	}

	if err := c.Put(730, detail); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get(730)
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if got.Name != detail.Name || got.AppID != 730 {
		t.Errorf("Get() = %+v", got)
	}
	if got.ReviewScore == nil || *got.ReviewScore != 83 {
		t.Errorf("ReviewScore = %v", got.ReviewScore)
	}
	if len(got.Genres) != 2 || got.Genres[1] != "FPS" {
		t.Errorf("Genres = %v", got.Genres)
	}
}

func TestGetMiss(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	if got, ok := c.Get(999); ok || got != nil {
		t.Errorf("Get() = %v, %v, want nil, false", got, ok)
	}
}

func TestPutOverwrites(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	if err := c.Put(730, &models.GameDetail{AppID: 730, Name: "Old Name"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := c.Put(730, &models.GameDetail{AppID: 730, Name: "New Name"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := c.Get(730)
	if !ok || got.Name != "New Name" {
		t.Errorf("Get() = %+v, %v", got, ok)
	}
}

func TestGetAppIDMismatchIsMiss(t *testing.T) {
	t.Parallel()

	// An entry whose payload does not carry the key's app ID is stale data
	// from a different shape and must read as a miss, not a corrupt hit.
	c := testCache(t)
	if err := c.Put(730, &models.GameDetail{AppID: 570, Name: "Wrong App"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got, ok := c.Get(730); ok || got != nil {
		t.Errorf("Get() = %v, %v, want miss", got, ok)
	}
}

func TestEntriesAreIndependent(t *testing.T) {
	t.Parallel()

	c := testCache(t)
	for appID := int64(1); appID <= 3; appID++ {
		if err := c.Put(appID, &models.GameDetail{AppID: appID, Name: "Game"}); err != nil {
			t.Fatalf("Put(%d) error = %v", appID, err)
		}
	}

	for appID := int64(1); appID <= 3; appID++ {
		got, ok := c.Get(appID)
		if !ok || got.AppID != appID {
			t.Errorf("Get(%d) = %+v, %v", appID, got, ok)
		}
	}
	if _, ok := c.Get(4); ok {
		t.Error("Get(4) hit, want miss")
	}
}
