// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package models

// Stage identifies where in the per-entity pipeline a failure occurred.
type Stage string

const (
	StageDetailFetch Stage = "detail_fetch"
	StageSnapshot    Stage = "snapshot"
	StageGenres      Stage = "genres"
	StageExtended    Stage = "extended"
)

// EntityResult is the typed outcome of processing one entity during a
// collection run. A per-entity failure never aborts the run; it is recorded
// here and surfaced in the run report so failures stay observable.
type EntityResult struct {
	AppID    int64
	Name     string
	CacheHit bool

	// Stage and Err are set when the entity failed; Err == nil means the
	// snapshot was persisted.
	Stage Stage
	Err   error

	// CategoryErrors records extended-detail categories that failed in
	// their own transaction without blocking the others.
	CategoryErrors map[string]error
}

// OK reports whether the entity's snapshot was persisted.
func (r *EntityResult) OK() bool {
	return r.Err == nil
}
