// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/database"
	"github.com/ludographus/ludographus/internal/models"
)

type fakeAPIStore struct {
	snapshots   []models.GameSnapshot
	benchmarks  []models.GenreBenchmark
	lastCapture time.Time
	pingErr     error
	queryErr    error
}

func (f *fakeAPIStore) LatestSnapshots(ctx context.Context, since time.Time) ([]models.GameSnapshot, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.snapshots, nil
}

func (f *fakeAPIStore) SnapshotForApp(ctx context.Context, appID int64) (*models.GameSnapshot, error) {
	for i := range f.snapshots {
		if f.snapshots[i].AppID == appID {
			return &f.snapshots[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeAPIStore) LatestBenchmarks(ctx context.Context) ([]models.GenreBenchmark, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.benchmarks, nil
}

func (f *fakeAPIStore) LatestCaptureTime(ctx context.Context) (time.Time, error) {
	if f.lastCapture.IsZero() {
		return time.Time{}, database.ErrNotFound
	}
	return f.lastCapture, nil
}

func (f *fakeAPIStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func serverConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:               "127.0.0.1",
		Port:               8417,
		Timeout:            30 * time.Second,
		StalenessThreshold: 2 * time.Hour,
	}
}

func doRequest(t *testing.T, store Store, method, path string) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()

	router := NewRouter(NewHandler(store, serverConfig()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, envelope
}

func TestGamesEndpoint(t *testing.T) {
	t.Parallel()

	store := &fakeAPIStore{snapshots: []models.GameSnapshot{
		{AppID: 730, Name: "Counter-Strike 2", PeakPlayers: 1_400_000, Genres: []string{"Action"}},
		{AppID: 570, Name: "Dota 2", PeakPlayers: 700_000},
	}}

	rec, envelope := doRequest(t, store, http.MethodGet, "/api/v1/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if envelope.Status != "success" {
		t.Errorf("status field = %q", envelope.Status)
	}

	data, ok := envelope.Data.([]interface{})
	if !ok || len(data) != 2 {
		t.Fatalf("data = %#v, want 2 entries", envelope.Data)
	}
}

func TestGamesEndpointEmpty(t *testing.T) {
	t.Parallel()

	rec, envelope := doRequest(t, &fakeAPIStore{}, http.MethodGet, "/api/v1/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// No data must serialize as an empty list, not null.
	if data, ok := envelope.Data.([]interface{}); !ok || len(data) != 0 {
		t.Errorf("data = %#v, want []", envelope.Data)
	}
}

func TestGameEndpoint(t *testing.T) {
	t.Parallel()

	store := &fakeAPIStore{snapshots: []models.GameSnapshot{
		{AppID: 730, Name: "Counter-Strike 2"},
	}}

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{"found", "/api/v1/games/730", http.StatusOK},
		{"not found", "/api/v1/games/999", http.StatusNotFound},
		{"not a number", "/api/v1/games/abc", http.StatusBadRequest},
		{"negative", "/api/v1/games/-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, envelope := doRequest(t, store, http.MethodGet, tt.path)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK && envelope.Error == nil {
				t.Error("error field missing on failure response")
			}
		})
	}
}

func TestBenchmarksEndpoint(t *testing.T) {
	t.Parallel()

	store := &fakeAPIStore{benchmarks: []models.GenreBenchmark{
		{Genre: "Action", TotalGames: 12, MarketActivity: 55},
	}}

	rec, envelope := doRequest(t, store, http.MethodGet, "/api/v1/benchmarks")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data, ok := envelope.Data.([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("data = %#v", envelope.Data)
	}
}

func TestQueryFailureReturns500(t *testing.T) {
	t.Parallel()

	store := &fakeAPIStore{queryErr: errors.New("db closed")}
	rec, envelope := doRequest(t, store, http.MethodGet, "/api/v1/games")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Code != "QUERY_FAILED" {
		t.Errorf("error = %+v", envelope.Error)
	}
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		store      *fakeAPIStore
		wantCode   int
		wantStatus string
	}{
		{
			name:       "healthy",
			store:      &fakeAPIStore{lastCapture: time.Now().Add(-10 * time.Minute)},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "stale data",
			store:      &fakeAPIStore{lastCapture: time.Now().Add(-3 * time.Hour)},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name:       "no data yet",
			store:      &fakeAPIStore{},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name:       "database down",
			store:      &fakeAPIStore{pingErr: errors.New("connection refused")},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec, envelope := doRequest(t, tt.store, http.MethodGet, "/health")
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if envelope.Status != tt.wantStatus {
				t.Errorf("status field = %q, want %q", envelope.Status, tt.wantStatus)
			}
		})
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	t.Parallel()

	router := NewRouter(NewHandler(&fakeAPIStore{}, serverConfig()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
