package timeutil_test

import (
	"math"
	"testing"
	"time"

	"shelfpace/internal/timeutil"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		a    time.Time
		b    time.Time
		want float64
	}{
		{"whole days", base, base.Add(72 * time.Hour), 3},
		{"half day", base, base.Add(12 * time.Hour), 0.5},
		{"three hours", base, base.Add(3 * time.Hour), 0.125},
		{"negative", base, base.Add(-24 * time.Hour), -1},
		{"zero", base, base, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := timeutil.DaysBetween(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("DaysBetween = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDaysBetweenYearBoundaries(t *testing.T) {
	loc := time.UTC
	full := timeutil.DaysBetween(timeutil.StartOfYear(2025, loc), timeutil.EndOfYear(2025, loc))
	if full != 364 {
		t.Fatalf("non-leap Jan 1 to Dec 31 = %v, want 364", full)
	}
	leap := timeutil.DaysBetween(timeutil.StartOfYear(2024, loc), timeutil.EndOfYear(2024, loc))
	if leap != 365 {
		t.Fatalf("leap Jan 1 to Dec 31 = %v, want 365", leap)
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0, "0m"},
		{0.5, "30m"},
		{1, "1h 0m"},
		{2.25, "2h 15m"},
		{10.999, "10h 60m"},
	}
	for _, tc := range cases {
		if got := timeutil.FormatHoursMinutes(tc.hours); got != tc.want {
			t.Errorf("FormatHoursMinutes(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		hours float64
		want  string
	}{
		{0.75, "45 min"},
		{1, "1 hr"},
		{1.5, "1 hr 30 min"},
		{2, "2 hrs"},
		{2.5, "2 hrs 30 min"},
		{1.9999, "1 hrs 60 min"},
	}
	for _, tc := range cases {
		if got := timeutil.FormatDuration(tc.hours); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.hours, got, tc.want)
		}
	}
}

func TestFormatReadingSpeed(t *testing.T) {
	cases := []struct {
		speed float64
		want  string
	}{
		{1, "1"},
		{2, "2"},
		{1.8, "1.8"},
		{1.7999, "1.8"},
		{1.75, "1.75"},
		{1.25, "1.25"},
	}
	for _, tc := range cases {
		if got := timeutil.FormatReadingSpeed(tc.speed); got != tc.want {
			t.Errorf("FormatReadingSpeed(%v) = %q, want %q", tc.speed, got, tc.want)
		}
	}
}
