// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package steam

import (
	"fmt"
)

// FetchError is the typed failure for a single upstream request. It
// identifies the operation and entity/page so the caller can decide to
// skip-and-continue or abort. A rate-limit failure (StatusCode 429) means
// the single cooldown retry was also throttled.
type FetchError struct {
	// Operation is the API call that failed ("app_details", "most_played", ...).
	Operation string

	// AppID identifies the entity for per-app calls, 0 for listing calls.
	AppID int64

	// Page is the 1-based listing page for pagination calls, 0 otherwise.
	Page int

	// StatusCode is the HTTP status when the failure was a non-2xx
	// response, 0 for transport failures.
	StatusCode int

	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	target := ""
	switch {
	case e.AppID != 0:
		target = fmt.Sprintf(" appid=%d", e.AppID)
	case e.Page != 0:
		target = fmt.Sprintf(" page=%d", e.Page)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("steam %s failed%s: status %d: %v", e.Operation, target, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("steam %s failed%s: %v", e.Operation, target, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the failure was upstream throttling that
// persisted through the single cooldown retry.
func (e *FetchError) RateLimited() bool {
	return e.StatusCode == 429
}
