// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ludographus/ludographus/internal/logging"
	"github.com/ludographus/ludographus/internal/models"
)

// mostPlayedResponse is the wire shape of the charts listing endpoint.
type mostPlayedResponse struct {
	Response struct {
		Ranks []struct {
			Rank             int   `json:"rank"`
			AppID            int64 `json:"appid"`
			ConcurrentInGame int64 `json:"concurrent_in_game"`
			PeakInGame       int64 `json:"peak_in_game"`
		} `json:"ranks"`
		NextCursor string `json:"next_cursor"`
	} `json:"response"`
}

// GetMostPlayed fetches the most-played listing, following cursor
// pagination until limit entries are collected or the listing is exhausted.
//
// Defensive termination: duplicate app IDs reappearing across pages are
// dropped; a cursor that was already consumed signals a server-side
// pagination loop and stops the walk; a page that yields no items, or no
// new IDs, also terminates. These are normal loop exits, not errors.
func (c *Client) GetMostPlayed(ctx context.Context, limit int) ([]models.GameSummary, error) {
	games := make([]models.GameSummary, 0, limit)
	seenApps := make(map[int64]struct{}, limit)
	seenCursors := make(map[string]struct{})

	cursor := ""
	for page := 1; len(games) < limit; page++ {
		var resp mostPlayedResponse
		if err := c.getJSON(ctx, "most_played", c.mostPlayedURL(cursor), &resp); err != nil {
			if fe, ok := err.(*FetchError); ok {
				fe.Page = page
			}
			return nil, err
		}

		if len(resp.Response.Ranks) == 0 {
			break
		}

		newIDs := 0
		for _, rank := range resp.Response.Ranks {
			if rank.AppID == 0 {
				continue
			}
			if _, dup := seenApps[rank.AppID]; dup {
				continue
			}
			seenApps[rank.AppID] = struct{}{}
			newIDs++
			games = append(games, models.GameSummary{
				AppID:          rank.AppID,
				Rank:           rank.Rank,
				CurrentPlayers: rank.ConcurrentInGame,
				PeakPlayers:    rank.PeakInGame,
			})
			if len(games) == limit {
				break
			}
		}

		if newIDs == 0 {
			logging.Debug().Int("page", page).Msg("Listing page yielded no new entries, stopping pagination")
			break
		}

		cursor = resp.Response.NextCursor
		if cursor == "" {
			break
		}
		if _, looped := seenCursors[cursor]; looped {
			logging.Warn().Int("page", page).Str("cursor", cursor).Msg("Listing cursor repeated, terminating pagination defensively")
			break
		}
		seenCursors[cursor] = struct{}{}
	}

	logging.Info().Int("games", len(games)).Msg("Listing fetch complete")
	return games, nil
}

// mostPlayedURL builds the charts listing URL for one page.
func (c *Client) mostPlayedURL(cursor string) string {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("format", "json")
	params.Set("count", strconv.Itoa(c.pageSize))
	if cursor != "" {
		params.Set("cursor", cursor)
	}
	return fmt.Sprintf("%s/ISteamChartsService/GetMostPlayedGames/v1/?%s", c.webAPIURL, params.Encode())
}
