package stats

import (
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/timeutil"
)

// Lifetime aggregates the whole reading history. AverageHoursPerDay is a
// pooled ratio: total true hours over total reading days across completed
// books, not a mean of per-book ratios.
type Lifetime struct {
	YearsTracked        float64
	TotalBooks          int
	TotalHours          float64
	AverageBooksPerYear float64
	AverageHoursPerDay  float64
	AverageDaysPerBook  float64
	AverageHoursPerBook float64
}

// ComputeLifetime derives the lifetime aggregates from the full book
// collection at a reference time.
func ComputeLifetime(books []book.Book, now time.Time) Lifetime {
	var lifetime Lifetime

	var earliestStart time.Time
	for _, b := range books {
		if earliestStart.IsZero() || b.StartedAt.Before(earliestStart) {
			earliestStart = b.StartedAt
		}
	}
	if !earliestStart.IsZero() {
		lifetime.YearsTracked = timeutil.DaysBetween(earliestStart, now) / timeutil.DaysPerYear
	}

	years := make(map[int]struct{})
	var (
		completedCount int
		totalHours     float64
		totalTrueHours float64
		totalReadDays  float64
	)
	for _, b := range books {
		if !b.Finished() {
			continue
		}
		completedCount++
		totalHours += b.Duration
		totalTrueHours += b.TrueDuration()
		totalReadDays += timeutil.DaysBetween(b.StartedAt, *b.FinishedAt)
		years[b.FinishedAt.Year()] = struct{}{}
	}

	lifetime.TotalBooks = completedCount
	lifetime.TotalHours = totalHours
	if len(years) > 0 {
		lifetime.AverageBooksPerYear = float64(completedCount) / float64(len(years))
	}
	if totalReadDays > 0 {
		lifetime.AverageHoursPerDay = totalTrueHours / totalReadDays
	}
	if completedCount > 0 {
		lifetime.AverageDaysPerBook = totalReadDays / float64(completedCount)
		lifetime.AverageHoursPerBook = totalHours / float64(completedCount)
	}
	return lifetime
}
