package app

import (
	"testing"
	"time"
)

func TestFormatTimeAgoBuckets(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 0, want: "just now"},
		{ago: 59 * time.Second, want: "just now"},
		{ago: time.Minute, want: "1 minute ago"},
		{ago: 119 * time.Second, want: "1 minute ago"},
		{ago: 45 * time.Minute, want: "45 minutes ago"},
		{ago: time.Hour, want: "1 hour ago"},
		{ago: 23 * time.Hour, want: "23 hours ago"},
		{ago: 24 * time.Hour, want: "1 day ago"},
		{ago: 29 * 24 * time.Hour, want: "29 days ago"},
		{ago: 30 * 24 * time.Hour, want: "1 month ago"},
		{ago: 364 * 24 * time.Hour, want: "12 months ago"},
		{ago: 365 * 24 * time.Hour, want: "1 year ago"},
		{ago: 3 * 365 * 24 * time.Hour, want: "3 years ago"},
		{ago: -time.Hour, want: "just now"},
	}
	for _, tc := range cases {
		if got := formatTimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("ago=%s: expected %q, got %q", tc.ago, tc.want, got)
		}
	}
}

func TestFormatNoteDate(t *testing.T) {
	ts := time.Date(2023, 1, 1, 15, 45, 0, 0, time.UTC)
	if got := formatNoteDate(ts, time.UTC); got != "Jan 1, 2023, 3:45 PM" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := formatNoteDate(time.Time{}, time.UTC); got != "" {
		t.Fatalf("expected empty date for zero time, got %q", got)
	}
}

func TestParseTimestampMode(t *testing.T) {
	if parseTimestampMode("ISO") != TimestampModeAbsolute {
		t.Fatalf("expected iso to map to absolute")
	}
	if parseTimestampMode("bogus") != TimestampModeRelative {
		t.Fatalf("expected default relative mode")
	}
}
