// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/thejerf/suture/v4"
)

// mockRunner is a test double for the IntervalRunner interface.
type mockRunner struct {
	err   error
	calls int
}

func (m *mockRunner) Run(ctx context.Context) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return ctx.Err()
}

func TestCollectorService_Interface(t *testing.T) {
	var _ suture.Service = (*CollectorService)(nil)
}

func TestCollectorService_Serve(t *testing.T) {
	t.Run("cancellation is a normal stop", func(t *testing.T) {
		runner := &mockRunner{err: context.Canceled}
		svc := NewCollectorService(runner)

		if err := svc.Serve(context.Background()); err != nil {
			t.Errorf("Serve() = %v, want nil on cancellation", err)
		}
		if runner.calls != 1 {
			t.Errorf("Run calls = %d, want 1", runner.calls)
		}
	})

	t.Run("deadline is a normal stop", func(t *testing.T) {
		runner := &mockRunner{err: context.DeadlineExceeded}
		svc := NewCollectorService(runner)

		if err := svc.Serve(context.Background()); err != nil {
			t.Errorf("Serve() = %v, want nil on deadline", err)
		}
	})

	t.Run("wrapped cancellation is a normal stop", func(t *testing.T) {
		runner := &mockRunner{err: errors.Join(errors.New("run aborted"), context.Canceled)}
		svc := NewCollectorService(runner)

		if err := svc.Serve(context.Background()); err != nil {
			t.Errorf("Serve() = %v, want nil on wrapped cancellation", err)
		}
	})

	t.Run("real failures surface to the supervisor", func(t *testing.T) {
		runErr := errors.New("collection loop died")
		runner := &mockRunner{err: runErr}
		svc := NewCollectorService(runner)

		if err := svc.Serve(context.Background()); !errors.Is(err, runErr) {
			t.Errorf("Serve() = %v, want %v", err, runErr)
		}
	})

	t.Run("clean exit returns nil", func(t *testing.T) {
		svc := NewCollectorService(&mockRunner{})
		if err := svc.Serve(context.Background()); err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	})
}

func TestCollectorService_String(t *testing.T) {
	svc := NewCollectorService(&mockRunner{})
	if svc.String() != "collector" {
		t.Errorf("String() = %q", svc.String())
	}
}
