// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package services

import (
	"context"
	"errors"
)

// IntervalRunner matches the collector manager's blocking Run loop.
type IntervalRunner interface {
	Run(ctx context.Context) error
}

// CollectorService wraps the collector manager as a supervised service.
type CollectorService struct {
	runner IntervalRunner
}

// NewCollectorService creates the wrapper.
func NewCollectorService(runner IntervalRunner) *CollectorService {
	return &CollectorService{runner: runner}
}

// Serve implements suture.Service. Context cancellation is a normal stop,
// not a failure, so it is not reported as an error to the supervisor.
func (s *CollectorService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// String identifies the service in supervisor log messages.
func (s *CollectorService) String() string {
	return "collector"
}
