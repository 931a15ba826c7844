package utils

import (
	"testing"
	"time"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{0, "0min"},
		{45, "45min"},
		{60, "1h"},
		{90, "1h30min"},
		{120, "2h"},
		{125, "2h5min"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.minutes); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestSameISOWeek(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local)
	nextMonday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)

	if !SameISOWeek(monday, sunday) {
		t.Error("Monday and the following Sunday share an ISO week")
	}
	if SameISOWeek(sunday, nextMonday) {
		t.Error("Sunday and the next Monday are in different ISO weeks")
	}
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)
	b := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	c := time.Date(2025, 8, 15, 0, 0, 0, 0, time.Local)

	if !SameMonth(a, b) {
		t.Error("same month and year should match")
	}
	if SameMonth(a, c) {
		t.Error("same month of a different year should not match")
	}
}

func TestMinutesFromMidnight(t *testing.T) {
	at := time.Date(2026, 8, 30, 9, 30, 59, 0, time.Local)
	if got := MinutesFromMidnight(at); got != 570 {
		t.Errorf("expected 570, got %d", got)
	}
}

func TestParseDayRoundTrip(t *testing.T) {
	parsed, err := ParseDay("2026-02-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if FormatDay(parsed) != "2026-02-28" {
		t.Errorf("round trip changed the date: %s", FormatDay(parsed))
	}

	if _, err := ParseDay("2026-13-01"); err == nil {
		t.Error("expected error for invalid month")
	}
}
