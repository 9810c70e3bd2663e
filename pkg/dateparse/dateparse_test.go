package dateparse

import (
	"testing"
	"time"
)

func TestParseFormats(t *testing.T) {
	want := time.Date(2025, time.December, 5, 0, 0, 0, 0, time.Local)

	cases := []struct {
		name  string
		input string
	}{
		{"locale with comma", "12/05/2025, 10:49:35 AM"},
		{"locale single digit", "12/5/2025, 9:45:22 AM"},
		{"iso date", "2025-12-05"},
		{"iso timestamp", "2025-12-05T10:49:35.000Z"},
		{"iso timestamp no zone", "2025-12-05T10:49:35"},
		{"generic us date", "12/05/2025"},
		{"generic long form", "December 5, 2025"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Parse(tc.input)
			if !ok {
				t.Fatalf("Parse(%q) failed", tc.input)
			}
			if !got.Equal(want) && !sameDay(got, want) {
				t.Fatalf("Parse(%q) = %v, want %v", tc.input, got, want)
			}
		})
	}
}

func TestParseNormalizesTimeOfDay(t *testing.T) {
	got, ok := Parse("12/05/2025, 11:59:59 PM")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestParseFailures(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "13/45/2025, 9:00:00 AM", "2025-13-99"} {
		if _, ok := Parse(input); ok {
			t.Fatalf("Parse(%q) unexpectedly succeeded", input)
		}
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
