// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package models

import (
	"strings"
	"time"
)

// releaseDateSentinels are platform placeholder strings that mean "no
// release date yet". Matched case-insensitively.
var releaseDateSentinels = map[string]struct{}{
	"tba":             {},
	"coming soon":     {},
	"to be announced": {},
}

// releaseDateLayouts are the date formats the platform is known to emit.
var releaseDateLayouts = []string{
	"2 Jan, 2006",
	"Jan 2, 2006",
	"Jan 2006",
	"2006",
}

// NormalizeReleaseDate parses a raw platform release-date string into a
// date. Placeholder sentinels ("TBA", "coming soon", "to be announced")
// and unparseable values normalize to nil, never an error.
func NormalizeReleaseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, ok := releaseDateSentinels[strings.ToLower(raw)]; ok {
		return nil
	}

	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// markupReplacer strips the HTML fragments the platform embeds in
// delimiter-joined lists (supported_languages in particular).
var markupReplacer = strings.NewReplacer(
	"<br>", ",",
	"<br/>", ",",
	"<strong>", "",
	"</strong>", "",
	"<b>", "",
	"</b>", "",
	"*", "",
)

// SplitList converts a comma-joined raw API string into an ordered list of
// trimmed, non-empty entries, stripping embedded markup first. For values
// read back from storage use SplitStored, which never rewrites entries.
func SplitList(raw string) []string {
	raw = markupReplacer.Replace(raw)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StoredListSep separates list entries in TEXT columns. A unit separator
// cannot appear in genre/category/language names, so entries containing
// commas or markup-like characters round-trip exactly.
const StoredListSep = "\x1f"

// JoinStored encodes a list for storage as a single TEXT column.
func JoinStored(items []string) string {
	return strings.Join(items, StoredListSep)
}

// SplitStored is the inverse of JoinStored. Entries are returned verbatim.
func SplitStored(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, StoredListSep)
}

// PriceFromCents converts an integer minor-currency amount to major units.
func PriceFromCents(cents int64) float64 {
	return float64(cents) / 100.0
}

// First returns a pointer to the first entry of a list, or nil when empty.
// The platform delivers developer/publisher as lists; snapshots store the
// primary one.
func First(items []string) *string {
	if len(items) == 0 {
		return nil
	}
	return &items[0]
}
