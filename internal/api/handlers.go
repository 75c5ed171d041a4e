// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package api provides the read-only HTTP surface over collected telemetry
// and computed benchmarks, routed with Chi.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/database"
	"github.com/ludographus/ludographus/internal/models"
)

// Store is the read surface the handlers serve from.
type Store interface {
	LatestSnapshots(ctx context.Context, since time.Time) ([]models.GameSnapshot, error)
	SnapshotForApp(ctx context.Context, appID int64) (*models.GameSnapshot, error)
	LatestBenchmarks(ctx context.Context) ([]models.GenreBenchmark, error)
	LatestCaptureTime(ctx context.Context) (time.Time, error)
	Ping(ctx context.Context) error
}

// Handler serves the API endpoints.
type Handler struct {
	store Store
	cfg   *config.ServerConfig
	now   func() time.Time
}

// NewHandler creates an API handler.
func NewHandler(store Store, cfg *config.ServerConfig) *Handler {
	return &Handler{store: store, cfg: cfg, now: time.Now}
}

// Games returns the latest snapshot per game within the staleness window,
// ordered by peak players.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	since := resolveSince(r, start, h.cfg.StalenessThreshold)

	snapshots, err := h.store.LatestSnapshots(r.Context(), since)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "failed to load game snapshots", err)
		return
	}
	if snapshots == nil {
		snapshots = []models.GameSnapshot{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   snapshots,
		Metadata: models.Metadata{
			Timestamp:   start,
			QueryTimeMS: h.now().Sub(start).Milliseconds(),
		},
	})
}

// Game returns the latest snapshot for one app.
func (h *Handler) Game(w http.ResponseWriter, r *http.Request) {
	start := h.now()

	appID, err := strconv.ParseInt(chi.URLParam(r, "appid"), 10, 64)
	if err != nil || appID <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_APPID", "appid must be a positive integer", err)
		return
	}

	snap, err := h.store.SnapshotForApp(r.Context(), appID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "no snapshot for app", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "failed to load game snapshot", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   snap,
		Metadata: models.Metadata{
			Timestamp:   start,
			QueryTimeMS: h.now().Sub(start).Milliseconds(),
		},
	})
}

// Benchmarks returns the most recently computed benchmark per genre.
func (h *Handler) Benchmarks(w http.ResponseWriter, r *http.Request) {
	start := h.now()

	benchmarks, err := h.store.LatestBenchmarks(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "QUERY_FAILED", "failed to load benchmarks", err)
		return
	}
	if benchmarks == nil {
		benchmarks = []models.GenreBenchmark{}
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   benchmarks,
		Metadata: models.Metadata{
			Timestamp:   start,
			QueryTimeMS: h.now().Sub(start).Milliseconds(),
		},
	})
}

// healthStatus is the /health payload.
type healthStatus struct {
	Status      string     `json:"status"`
	Database    string     `json:"database"`
	LastCapture *time.Time `json:"last_capture,omitempty"`
	Stale       bool       `json:"stale"`
}

// Health reports database reachability and data freshness. The endpoint
// returns 200 with a degraded status when data is stale, and 503 only when
// the database itself is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := h.now()
	status := healthStatus{Status: "ok", Database: "ok"}
	code := http.StatusOK

	if err := h.store.Ping(r.Context()); err != nil {
		status.Status = "unhealthy"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	} else {
		captured, err := h.store.LatestCaptureTime(r.Context())
		switch {
		case errors.Is(err, database.ErrNotFound):
			status.Stale = true
			status.Status = "degraded"
		case err != nil:
			status.Status = "degraded"
		default:
			status.LastCapture = &captured
			if start.Sub(captured) > h.cfg.StalenessThreshold {
				status.Stale = true
				status.Status = "degraded"
			}
		}
	}

	respondJSON(w, code, &models.APIResponse{
		Status: status.Status,
		Data:   status,
		Metadata: models.Metadata{
			Timestamp: start,
		},
	})
}

// resolveSince parses the optional since query parameter (RFC 3339),
// falling back to now minus the staleness window.
func resolveSince(r *http.Request, now time.Time, window time.Duration) time.Time {
	if raw := r.URL.Query().Get("since"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
	}
	return now.Add(-window)
}
