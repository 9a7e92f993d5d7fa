package book

import (
	"time"
)

// Book is a single tracked audiobook. Duration is measured in "book hours":
// the listening time required at 1.0x speed. ReadingSpeed converts book hours
// into wall-clock ("true") hours. FinishedAt is set exactly when
// PercentComplete reaches 100; an unfinished book uses the caller's reference
// time as its provisional end boundary.
type Book struct {
	ID              string
	Title           string
	Author          string
	Duration        float64
	ReadingSpeed    float64
	PercentComplete float64
	StartedAt       time.Time
	FinishedAt      *time.Time
	PlexRatingKey   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Finished reports whether the book counts as complete for aggregation.
func (b Book) Finished() bool {
	return b.PercentComplete >= 100 && b.FinishedAt != nil
}

// BookHoursCompleted is progress on the book's own duration scale.
func (b Book) BookHoursCompleted() float64 {
	return b.PercentComplete / 100 * b.Duration
}

// TrueHoursCompleted is the wall-clock listening time spent so far.
func (b Book) TrueHoursCompleted() float64 {
	if b.ReadingSpeed <= 0 {
		return 0
	}
	return b.BookHoursCompleted() / b.ReadingSpeed
}

// TrueDuration is the wall-clock time the whole book takes at the configured
// speed, or 0 when the speed is unusable.
func (b Book) TrueDuration() float64 {
	if b.ReadingSpeed <= 0 {
		return 0
	}
	return b.Duration / b.ReadingSpeed
}

// Goal is an annual reading target.
type Goal struct {
	Year   int
	Target int
}

// Setting keys recognized by the profile loader.
const (
	SettingBirthday       = "birthday"
	SettingLifeExpectancy = "life_expectancy"
)

// Profile carries the optional user settings the lifetime projection reads.
// Birthday is nil when the user never configured one; LifeExpectancy is 0
// when unset and defaulted by the projection calculator.
type Profile struct {
	Birthday       *time.Time
	LifeExpectancy float64
}
