package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// millisPerDay is the fixed divisor for fractional day counts.
const millisPerDay = 86_400_000.0

// DaysPerYear approximates a calendar year including leap days.
const DaysPerYear = 365.25

// DaysBetween returns the fractional number of days from a to b. The result is
// negative when b precedes a; callers clamp when a non-negative count is
// semantically required.
func DaysBetween(a, b time.Time) float64 {
	return float64(b.Sub(a).Milliseconds()) / millisPerDay
}

// StartOfYear returns midnight on January 1 of the given year.
func StartOfYear(year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
}

// EndOfYear returns midnight on December 31 of the given year, matching the
// boundary the goal and stats calculators divide by.
func EndOfYear(year int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.December, 31, 0, 0, 0, 0, loc)
}

// FormatHoursMinutes renders a fractional hour count as "3h 25m", dropping the
// hour component entirely when it is zero ("25m").
func FormatHoursMinutes(hours float64) string {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if whole == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", whole, minutes)
}

// FormatDuration renders a fractional hour count with spelled-out labels:
// "45 min", "1 hr", "2 hrs 30 min". The singular label applies only when the
// whole-hour component is exactly one and the minute remainder has not rounded
// past the hour boundary.
func FormatDuration(hours float64) string {
	whole := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if whole == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	label := "hrs"
	if whole == 1 && minutes <= 59 {
		label = "hr"
	}
	if minutes == 0 {
		return fmt.Sprintf("%d %s", whole, label)
	}
	return fmt.Sprintf("%d %s %d min", whole, label, minutes)
}

// FormatReadingSpeed renders a playback multiplier with the fewest digits that
// preserve it: "2" for whole speeds, "1.8" when the value sits within 0.001 of
// a tenth, "1.75" otherwise.
func FormatReadingSpeed(speed float64) string {
	if speed == math.Trunc(speed) {
		return strconv.Itoa(int(speed))
	}
	tenths := math.Round(speed*10) / 10
	if math.Abs(speed-tenths) < 0.001 {
		return strconv.FormatFloat(tenths, 'f', 1, 64)
	}
	return strconv.FormatFloat(speed, 'f', 2, 64)
}
