// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package database

import "errors"

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("database: not found")
