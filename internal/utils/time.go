package utils

import (
	"fmt"
	"time"

	"github.com/flowstate/api/internal/constants"
)

// Today returns today's date string (YYYY-MM-DD) in the local timezone.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}

// FormatDay formats t as a date string (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDay parses a date string (YYYY-MM-DD) at midnight local time.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", day, err)
	}
	return t, nil
}

// SameISOWeek reports whether a and b fall in the same ISO week of the
// same week-based year.
func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// SameMonth reports whether a and b fall in the same calendar month of
// the same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MinutesFromMidnight returns t's offset into its day in minutes.
func MinutesFromMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders a minute count as a compact duration string:
// 45 -> "45min", 60 -> "1h", 90 -> "1h30min".
func FormatMinutes(minutes int64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins > 0 {
		return fmt.Sprintf("%dh%dmin", hours, mins)
	}
	return fmt.Sprintf("%dh", hours)
}
