package stats

import (
	"sort"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/timeutil"
)

// YearStat summarizes the books finished in one calendar year. The Max flags
// mark the best year per metric across the whole history; ties are all
// flagged. Hours are book hours except HoursPerDay, which is true hours
// against the days elapsed in that year.
type YearStat struct {
	Year            int
	BookCount       int
	TotalHours      float64
	HoursPerBook    float64
	HoursPerDay     float64
	MaxBooks        bool
	MaxHours        bool
	MaxHoursPerBook bool
	MaxHoursPerDay  bool
}

// ByYear groups completed books by finish year and returns one stat per year,
// ascending. The current year's hours-per-day divides by days elapsed so far
// rather than the whole year.
func ByYear(books []book.Book, now time.Time) []YearStat {
	type yearGroup struct {
		count     int
		hours     float64
		trueHours float64
	}
	groups := make(map[int]*yearGroup)
	for _, b := range books {
		if !b.Finished() {
			continue
		}
		year := b.FinishedAt.Year()
		group := groups[year]
		if group == nil {
			group = &yearGroup{}
			groups[year] = group
		}
		group.count++
		group.hours += b.Duration
		group.trueHours += b.TrueDuration()
	}

	stats := make([]YearStat, 0, len(groups))
	for year, group := range groups {
		stat := YearStat{
			Year:       year,
			BookCount:  group.count,
			TotalHours: group.hours,
		}
		if group.count > 0 {
			stat.HoursPerBook = group.hours / float64(group.count)
		}

		yearEnd := timeutil.EndOfYear(year, now.Location())
		if year == now.Year() {
			yearEnd = now
		}
		daysInYear := timeutil.DaysBetween(timeutil.StartOfYear(year, now.Location()), yearEnd)
		if daysInYear > 0 {
			stat.HoursPerDay = group.trueHours / daysInYear
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Year < stats[j].Year })
	flagMaxima(stats)
	return stats
}

// LatestFirst returns a copy sorted descending by year, the order summary
// widgets use to pick their default selection.
func LatestFirst(stats []YearStat) []YearStat {
	ordered := make([]YearStat, len(stats))
	copy(ordered, stats)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Year > ordered[j].Year })
	return ordered
}

func flagMaxima(stats []YearStat) {
	if len(stats) == 0 {
		return
	}
	var maxBooks int
	var maxHours, maxPerBook, maxPerDay float64
	for _, s := range stats {
		if s.BookCount > maxBooks {
			maxBooks = s.BookCount
		}
		if s.TotalHours > maxHours {
			maxHours = s.TotalHours
		}
		if s.HoursPerBook > maxPerBook {
			maxPerBook = s.HoursPerBook
		}
		if s.HoursPerDay > maxPerDay {
			maxPerDay = s.HoursPerDay
		}
	}
	for i := range stats {
		stats[i].MaxBooks = stats[i].BookCount == maxBooks
		stats[i].MaxHours = stats[i].TotalHours == maxHours
		stats[i].MaxHoursPerBook = stats[i].HoursPerBook == maxPerBook
		stats[i].MaxHoursPerDay = stats[i].HoursPerDay == maxPerDay
	}
}
