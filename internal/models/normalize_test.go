// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

package models

import (
	"testing"
	"time"
)

func TestNormalizeReleaseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want *time.Time
	}{
		{
			name: "day month year",
			raw:  "12 Aug, 2024",
			want: timePtr(time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "month day year",
			raw:  "Aug 12, 2024",
			want: timePtr(time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "month year only",
			raw:  "Mar 2025",
			want: timePtr(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name: "year only",
			raw:  "2026",
			want: timePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
		{name: "tba sentinel", raw: "TBA"},
		{name: "coming soon sentinel mixed case", raw: "Coming Soon"},
		{name: "to be announced sentinel", raw: "To Be Announced"},
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "garbage", raw: "when it's done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeReleaseDate(tt.raw)
			if tt.want == nil {
				if got != nil {
					t.Errorf("NormalizeReleaseDate(%q) = %v, want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("NormalizeReleaseDate(%q) = nil, want %v", tt.raw, tt.want)
			}
			if !got.Equal(*tt.want) {
				t.Errorf("NormalizeReleaseDate(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestSplitList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "plain list",
			raw:  "English, German, French",
			want: []string{"English", "German", "French"},
		},
		{
			name: "embedded markup",
			raw:  "English, German<strong>*</strong>, French<br>Japanese",
			want: []string{"English", "German", "French", "Japanese"},
		},
		{
			name: "bold tags and asterisks",
			raw:  "<b>English</b>*, Spanish",
			want: []string{"English", "Spanish"},
		},
		{
			name: "empty entries dropped",
			raw:  "Action, , Indie,",
			want: []string{"Action", "Indie"},
		},
		{name: "empty string", raw: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitList(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitList(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStoredListRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []string
	}{
		{
			name:  "plain entries",
			items: []string{"Single-player", "Co-op", "Steam Workshop"},
		},
		{
			// Storage must never rewrite entries the way the raw-API split
			// does: commas and asterisks are legal in stored names.
			name:  "commas and markup characters",
			items: []string{"Hack, Slash & Loot", "R*tro", "Action <b>Deluxe</b>"},
		},
		{name: "empty list", items: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitStored(JoinStored(tt.items))
			if len(got) != len(tt.items) {
				t.Fatalf("round trip = %v, want %v", got, tt.items)
			}
			for i := range got {
				if got[i] != tt.items[i] {
					t.Errorf("round trip[%d] = %q, want %q", i, got[i], tt.items[i])
				}
			}
		})
	}
}

func TestPriceFromCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cents int64
		want  float64
	}{
		{999, 9.99},
		{0, 0},
		{100, 1},
		{1, 0.01},
	}
	for _, tt := range tests {
		if got := PriceFromCents(tt.cents); got != tt.want {
			t.Errorf("PriceFromCents(%d) = %v, want %v", tt.cents, got, tt.want)
		}
	}
}

func TestFirst(t *testing.T) {
	t.Parallel()

	if got := First(nil); got != nil {
		t.Errorf("First(nil) = %v, want nil", got)
	}
	if got := First([]string{}); got != nil {
		t.Errorf("First(empty) = %v, want nil", got)
	}
	got := First([]string{"Valve", "Hidden Path"})
	if got == nil || *got != "Valve" {
		t.Errorf("First = %v, want Valve", got)
	}
}
