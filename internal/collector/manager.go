// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package collector

import (
	"context"
	"time"

	"github.com/ludographus/ludographus/internal/config"
	"github.com/ludographus/ludographus/internal/logging"
)

// Manager runs collection cycles on a fixed interval until its context is
// cancelled. Cycles never overlap: the ticker is only consulted between
// runs.
type Manager struct {
	collector *Collector
	cfg       *config.CollectorConfig
}

// NewManager creates an interval runner for the collector.
func NewManager(collector *Collector, cfg *config.CollectorConfig) *Manager {
	return &Manager{collector: collector, cfg: cfg}
}

// Run blocks, executing cycles until ctx is cancelled. A failed cycle is
// logged and the loop waits for the next tick; only context cancellation
// ends the loop.
func (m *Manager) Run(ctx context.Context) error {
	if m.cfg.RunOnStartup {
		m.runOnce(ctx)
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Collector manager stopping")
			return ctx.Err()
		case <-ticker.C:
			m.runOnce(ctx)
		}
	}
}

func (m *Manager) runOnce(ctx context.Context) {
	if _, err := m.collector.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Error().Err(err).Msg("Collection cycle failed")
	}
}
