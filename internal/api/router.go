// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/metrics"
)

// NewRouter builds the HTTP route tree.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/games", handler.Games)
		r.Get("/games/{appid}", handler.Game)
		r.Get("/benchmarks", handler.Benchmarks)
	})

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// requestMetrics records duration and status per route pattern, and logs
// completed requests at debug.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(elapsed.Seconds())

		logging.Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", ww.Status()).
			Dur("duration", elapsed).
			Msg("Request handled")
	})
}
