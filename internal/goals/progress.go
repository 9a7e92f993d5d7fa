package goals

import (
	"math"
	"sort"
	"strconv"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/timeutil"
)

const (
	// assumedReadingSpeed is the fixed playback rate the target-pace
	// projection divides by, independent of per-book speeds.
	assumedReadingSpeed = 2.0
	// fallbackBookHours stands in for the average book length until the
	// first completion of the year.
	fallbackBookHours = 10.0
)

// Progress is the derived goal state for one year at a reference time.
type Progress struct {
	Year              int
	Goal              int
	CompletedCount    int
	ExpectedCount     float64
	Delta             float64
	TargetHoursPerDay float64
	ProjectedBooks    float64
	ProjectedHours    float64
	IdleDays          float64
}

// Ahead reports whether completions lead the linear expectation.
func (p Progress) Ahead() bool {
	return p.Delta >= 0
}

// DisplayDelta renders the schedule delta with the convention the history
// screens use: one decimal place while |delta| is within 2, otherwise the
// nearest integer.
func DisplayDelta(delta float64) string {
	if math.Abs(delta) <= 2 {
		return strconv.FormatFloat(delta, 'f', 1, 64)
	}
	return strconv.Itoa(int(math.Round(delta)))
}

// Compute derives the goal progress for the given year. Books finishing in
// other years are ignored; unfinished books never count.
func Compute(books []book.Book, goal, year int, now time.Time) Progress {
	completed := completedInYear(books, year)

	yearStart := timeutil.StartOfYear(year, now.Location())
	yearEnd := timeutil.EndOfYear(year, now.Location())
	daysElapsed := timeutil.DaysBetween(yearStart, now)
	totalDays := timeutil.DaysBetween(yearStart, yearEnd)

	progress := Progress{
		Year:           year,
		Goal:           goal,
		CompletedCount: len(completed),
	}

	if totalDays > 0 {
		progress.ExpectedCount = float64(goal) * daysElapsed / totalDays
	}
	progress.Delta = float64(progress.CompletedCount) - progress.ExpectedCount

	progress.TargetHoursPerDay = targetHoursPerDay(completed, goal, yearEnd, now)

	if daysElapsed > 0 {
		var completedHours float64
		for _, b := range completed {
			completedHours += b.Duration
		}
		progress.ProjectedHours = completedHours / daysElapsed * totalDays
		progress.ProjectedBooks = float64(len(completed)) / daysElapsed * totalDays
	}

	progress.IdleDays = idleDays(completed)
	return progress
}

func completedInYear(books []book.Book, year int) []book.Book {
	var completed []book.Book
	for _, b := range books {
		if b.Finished() && b.FinishedAt.Year() == year {
			completed = append(completed, b)
		}
	}
	return completed
}

// targetHoursPerDay is the daily listening required to reach the goal by
// December 31, assuming the remaining books match the year's average length
// and are read at the assumed speed.
func targetHoursPerDay(completed []book.Book, goal int, yearEnd, now time.Time) float64 {
	booksRemaining := goal - len(completed)
	if booksRemaining <= 0 {
		return 0
	}

	averageLength := fallbackBookHours
	if len(completed) > 0 {
		var total float64
		for _, b := range completed {
			total += b.Duration
		}
		averageLength = total / float64(len(completed))
	}

	daysRemaining := timeutil.DaysBetween(now, yearEnd)
	if daysRemaining <= 0 {
		return 0
	}
	return float64(booksRemaining) * averageLength / (daysRemaining * assumedReadingSpeed)
}

// idleDays sums the gaps between finishing one book and starting the next,
// over the year's completions in finish order. Overlapping reads contribute
// nothing.
func idleDays(completed []book.Book) float64 {
	if len(completed) < 2 {
		return 0
	}
	ordered := make([]book.Book, len(completed))
	copy(ordered, completed)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].FinishedAt.Before(*ordered[j].FinishedAt)
	})

	var total float64
	for i := 0; i < len(ordered)-1; i++ {
		gap := timeutil.DaysBetween(*ordered[i].FinishedAt, ordered[i+1].StartedAt)
		total += math.Max(0, gap)
	}
	return total
}
