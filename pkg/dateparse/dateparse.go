// Package dateparse turns the heterogeneous timestamp strings stored on
// assessment records into normalized calendar dates.
package dateparse

import (
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

// Strategy attempts one textual date format. It reports ok=false when
// the input is not in its format; the next strategy gets a turn.
type Strategy func(s string) (time.Time, bool)

// strategies are tried in order; first success wins.
var strategies = []Strategy{
	parseLocale,
	parseISODate,
	parseISOTimestamp,
	parseGeneric,
}

// Parse attempts each known format in order and returns the date
// normalized to year/month/day at local midnight. ok is false when no
// strategy yields a valid calendar date; callers must treat such
// records as excluded from date comparisons, not matching.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, try := range strategies {
		if t, ok := try(s); ok {
			return normalize(t), true
		}
	}
	return time.Time{}, false
}

// parseLocale handles locale strings like "12/05/2025, 10:49:35 AM".
// Only the portion before the first comma carries the calendar date.
func parseLocale(s string) (time.Time, bool) {
	if !strings.Contains(s, ",") {
		return time.Time{}, false
	}
	datePart := strings.TrimSpace(strings.SplitN(s, ",", 2)[0])
	for _, layout := range []string{"01/02/2006", "1/2/2006", layoutISO} {
		if t, err := time.ParseInLocation(layout, datePart, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseISODate handles exactly "2006-01-02", anchored to local midnight.
func parseISODate(s string) (time.Time, bool) {
	if len(s) != 10 || !strings.Contains(s, "-") {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseISOTimestamp handles full timestamps such as
// "2025-12-05T10:49:35.000Z".
func parseISOTimestamp(s string) (time.Time, bool) {
	if !strings.Contains(s, "T") {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseGeneric is the best-effort fallback for anything else.
func parseGeneric(s string) (time.Time, bool) {
	for _, layout := range []string{
		"01/02/2006",
		"1/2/2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2006-01-02 15:04:05",
		time.ANSIC,
		time.UnixDate,
	} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalize discards the time of day, keeping year/month/day.
func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
