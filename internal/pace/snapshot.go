package pace

import (
	"fmt"
	"math"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/timeutil"
)

// BaselineTrueHoursPerDay is the fixed daily listening target. A pace at or
// above it counts as on schedule; the ETA and catch-up math project forward
// at exactly this rate rather than extrapolating the reader's trend.
const BaselineTrueHoursPerDay = 1.0

// Snapshot is the derived pace state for a single book at a reference time.
type Snapshot struct {
	ElapsedDays        float64
	TrueHoursCompleted float64
	TrueHoursPerDay    float64
	ETA                *time.Time
	MinutesNeededToday int
	Buffer             string
	MinutesPerPercent  float64
	PercentPerTrueHour float64
}

// OnPace reports whether the book meets the daily baseline.
func (s Snapshot) OnPace() bool {
	return s.TrueHoursPerDay >= BaselineTrueHoursPerDay
}

// Compute derives the full pace snapshot for a book. A finished book uses its
// finish date as the end boundary; an active book uses now. All divisions
// guard their denominators and degrade to zero or nil rather than NaN.
func Compute(b book.Book, now time.Time) Snapshot {
	elapsed := elapsedDays(b, now)
	trueCompleted := b.TrueHoursCompleted()

	snap := Snapshot{
		ElapsedDays:        elapsed,
		TrueHoursCompleted: trueCompleted,
		TrueHoursPerDay:    trueHoursPerDay(trueCompleted, elapsed),
		ETA:                eta(b, now),
		MinutesNeededToday: minutesNeededToday(trueCompleted, elapsed),
		MinutesPerPercent:  b.Duration * 60 / 100,
	}
	if trueDuration := b.TrueDuration(); trueDuration > 0 {
		snap.PercentPerTrueHour = 100 / trueDuration
	}
	snap.Buffer = buffer(snap.TrueHoursPerDay, trueCompleted, elapsed, now)
	return snap
}

func elapsedDays(b book.Book, now time.Time) float64 {
	end := now
	if b.Finished() {
		end = *b.FinishedAt
	}
	return timeutil.DaysBetween(b.StartedAt, end)
}

// trueHoursPerDay avoids averaging over a sub-day window: inside the first
// day the pace is simply the hours already listened.
func trueHoursPerDay(trueCompleted, elapsed float64) float64 {
	if elapsed <= 0 {
		return 0
	}
	if elapsed < 1 {
		return trueCompleted
	}
	return trueCompleted / elapsed
}

// eta projects the finish date assuming the baseline pace from now forward.
// It returns nil once nothing remains.
func eta(b book.Book, now time.Time) *time.Time {
	bookHoursRemaining := b.Duration - b.BookHoursCompleted()
	if bookHoursRemaining <= 0 {
		return nil
	}
	if b.ReadingSpeed <= 0 {
		return nil
	}
	trueHoursRemaining := bookHoursRemaining / b.ReadingSpeed
	daysRemaining := trueHoursRemaining / BaselineTrueHoursPerDay
	estimate := now.Add(time.Duration(daysRemaining * float64(24*time.Hour)))
	return &estimate
}

// minutesNeededToday is the additional listening required today to bring the
// average up to the baseline. A not-yet-started book owes the full hour.
func minutesNeededToday(trueCompleted, elapsed float64) int {
	if elapsed <= 0 {
		return 60
	}
	if elapsed < 1 {
		return int(math.Ceil(math.Max(0, 60-trueCompleted*60)))
	}
	targetTotal := elapsed * BaselineTrueHoursPerDay
	additional := targetTotal - trueCompleted
	return int(math.Ceil(math.Max(0, additional*60)))
}

// buffer describes when banked surplus hours run out if the reader stops
// exceeding the baseline. Empty unless the pace strictly exceeds it.
func buffer(perDay, trueCompleted, elapsed float64, now time.Time) string {
	if perDay <= BaselineTrueHoursPerDay {
		return ""
	}
	bufferDays := trueCompleted - elapsed
	if bufferDays <= 0 {
		return ""
	}
	until := now.Add(time.Duration(bufferDays * float64(24*time.Hour)))
	return fmt.Sprintf("Buffer until %s @ %s", until.Weekday(), until.Format("3:04 PM"))
}
