// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package steam

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// listingPage builds one charts response page.
func listingPage(nextCursor string, appIDs ...int64) string {
	ranks := make([]string, 0, len(appIDs))
	for i, id := range appIDs {
		ranks = append(ranks, fmt.Sprintf(
			`{"rank":%d,"appid":%d,"concurrent_in_game":%d,"peak_in_game":%d}`,
			i+1, id, id*10, id*20))
	}
	return fmt.Sprintf(`{"response":{"ranks":[%s],"next_cursor":%q}}`,
		strings.Join(ranks, ","), nextCursor)
}

// listingHandler serves pages keyed by cursor value; "" is the first page.
func listingHandler(pages map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Query().Get("cursor")]
		if !ok {
			http.Error(w, "unknown cursor", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(page))
	}
}

func TestGetMostPlayedFollowsCursors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(listingHandler(map[string]string{
		"":   listingPage("c1", 10, 20),
		"c1": listingPage("c2", 30, 40),
		"c2": listingPage("", 50),
	}))
	defer srv.Close()

	client := New(testConfig(srv))
	games, err := client.GetMostPlayed(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetMostPlayed() error = %v", err)
	}
	if len(games) != 5 {
		t.Fatalf("len(games) = %d, want 5", len(games))
	}
	if games[0].AppID != 10 || games[4].AppID != 50 {
		t.Errorf("games out of order: first=%d last=%d", games[0].AppID, games[4].AppID)
	}
	if games[0].CurrentPlayers != 100 || games[0].PeakPlayers != 200 {
		t.Errorf("metrics not mapped: current=%d peak=%d", games[0].CurrentPlayers, games[0].PeakPlayers)
	}
}

func TestGetMostPlayedStopsAtLimit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(listingHandler(map[string]string{
		"":   listingPage("c1", 10, 20, 30),
		"c1": listingPage("c2", 40, 50, 60),
	}))
	defer srv.Close()

	client := New(testConfig(srv))
	games, err := client.GetMostPlayed(context.Background(), 4)
	if err != nil {
		t.Fatalf("GetMostPlayed() error = %v", err)
	}
	if len(games) != 4 {
		t.Errorf("len(games) = %d, want 4", len(games))
	}
}

func TestGetMostPlayedDedupesAcrossPages(t *testing.T) {
	t.Parallel()

	// Second page repeats app 20 and adds one new entry.
	srv := httptest.NewServer(listingHandler(map[string]string{
		"":   listingPage("c1", 10, 20),
		"c1": listingPage("", 20, 30),
	}))
	defer srv.Close()

	client := New(testConfig(srv))
	games, err := client.GetMostPlayed(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetMostPlayed() error = %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("len(games) = %d, want 3 (duplicate dropped)", len(games))
	}
	seen := make(map[int64]bool)
	for _, g := range games {
		if seen[g.AppID] {
			t.Errorf("duplicate appid %d in result", g.AppID)
		}
		seen[g.AppID] = true
	}
}

func TestGetMostPlayedTerminatesOnRepeatedCursor(t *testing.T) {
	t.Parallel()

	// The server keeps alternating between two cursors; each page still
	// yields a new ID so only cursor tracking can break the loop.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		var page string
		switch cursor {
		case "":
			page = listingPage("a", 1)
		case "a":
			page = listingPage("b", 2)
		case "b":
			page = listingPage("a", 3)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	client := New(testConfig(srv))
	games, err := client.GetMostPlayed(context.Background(), 100)
	if err != nil {
		t.Fatalf("GetMostPlayed() error = %v", err)
	}
	if len(games) != 3 {
		t.Errorf("len(games) = %d, want 3 (loop detected after cursor repeat)", len(games))
	}
}

func TestGetMostPlayedEmptyFirstPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(listingHandler(map[string]string{
		"": listingPage("next"),
	}))
	defer srv.Close()

	client := New(testConfig(srv))
	games, err := client.GetMostPlayed(context.Background(), 10)
	if err != nil {
		t.Fatalf("GetMostPlayed() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("len(games) = %d, want 0", len(games))
	}
}
