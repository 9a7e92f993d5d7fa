package stats

import (
	"math"
	"time"

	"shelfpace/internal/book"
	"shelfpace/internal/timeutil"
)

// DefaultLifeExpectancy applies when the user never configured one.
const DefaultLifeExpectancy = 80.0

// Projection extrapolates remaining lifetime reading capacity. All fields are
// zero when no birthday is configured.
type Projection struct {
	AgeYears       float64
	YearsLeft      float64
	ProjectedBooks int
}

// ComputeProjection estimates how many more books the reader will finish,
// given their profile and the historical average pace.
func ComputeProjection(profile book.Profile, lifetime Lifetime, now time.Time) Projection {
	if profile.Birthday == nil {
		return Projection{}
	}

	lifeExpectancy := profile.LifeExpectancy
	if lifeExpectancy <= 0 {
		lifeExpectancy = DefaultLifeExpectancy
	}

	age := timeutil.DaysBetween(*profile.Birthday, now) / timeutil.DaysPerYear
	yearsLeft := math.Max(0, lifeExpectancy-age)
	return Projection{
		AgeYears:       age,
		YearsLeft:      yearsLeft,
		ProjectedBooks: int(math.Round(yearsLeft * lifetime.AverageBooksPerYear)),
	}
}
