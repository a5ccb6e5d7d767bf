// Package dates centralises the legacy DD-MM-YYYY wire format used by the
// campaign records. The scheduling core works with time.Time values only;
// this package is the single place where the textual format is touched.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the persisted record format for all campaign-facing dates.
const Layout = "02-01-2006"

// Parse converts a DD-MM-YYYY string into a midnight-UTC date.
func Parse(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	t, err := time.ParseInLocation(Layout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}

// Format renders a date as DD-MM-YYYY with zero padding.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Midnight truncates a timestamp to its UTC calendar date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute whole-day distance between two dates.
func DaysBetween(a, b time.Time) int {
	diff := Midnight(a).Sub(Midnight(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (24 * time.Hour))
}

// WeekKey renders the ISO week of a date as YYYY-Www, e.g. 2025-W45.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
