// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/models"
)

// respondJSON writes a JSON response with the standard envelope.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError writes an error response and logs the underlying cause.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}
