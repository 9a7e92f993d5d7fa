package api

import "time"

type bookView struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author,omitempty"`
	DurationHours   float64    `json:"duration_hours"`
	ReadingSpeed    float64    `json:"reading_speed"`
	PercentComplete float64    `json:"percent_complete"`
	StartedAt       time.Time  `json:"started_at"`
	FinishedAt      *time.Time `json:"finished_at,omitempty"`
	Finished        bool       `json:"finished"`
}

type paceView struct {
	BookID             string     `json:"book_id"`
	ElapsedDays        float64    `json:"elapsed_days"`
	TrueHoursCompleted float64    `json:"true_hours_completed"`
	TrueHoursPerDay    float64    `json:"true_hours_per_day"`
	OnPace             bool       `json:"on_pace"`
	ETA                *time.Time `json:"eta,omitempty"`
	MinutesNeededToday int        `json:"minutes_needed_today"`
	Buffer             string     `json:"buffer,omitempty"`
	MinutesPerPercent  float64    `json:"minutes_per_percent"`
	PercentPerTrueHour float64    `json:"percent_per_true_hour"`
}

type goalView struct {
	Year              int     `json:"year"`
	Goal              int     `json:"goal"`
	CompletedCount    int     `json:"completed_count"`
	ExpectedCount     float64 `json:"expected_count"`
	Delta             float64 `json:"delta"`
	DeltaDisplay      string  `json:"delta_display"`
	TargetHoursPerDay float64 `json:"target_hours_per_day"`
	ProjectedBooks    float64 `json:"projected_books"`
	ProjectedHours    float64 `json:"projected_hours"`
	IdleDays          float64 `json:"idle_days"`
}

type yearView struct {
	Year            int     `json:"year"`
	BookCount       int     `json:"book_count"`
	TotalHours      float64 `json:"total_hours"`
	HoursPerBook    float64 `json:"hours_per_book"`
	HoursPerDay     float64 `json:"hours_per_day"`
	MaxBooks        bool    `json:"max_books"`
	MaxHours        bool    `json:"max_hours"`
	MaxHoursPerBook bool    `json:"max_hours_per_book"`
	MaxHoursPerDay  bool    `json:"max_hours_per_day"`
}

type lifetimeView struct {
	YearsTracked        float64 `json:"years_tracked"`
	TotalBooks          int     `json:"total_books"`
	TotalHours          float64 `json:"total_hours"`
	AverageBooksPerYear float64 `json:"average_books_per_year"`
	AverageHoursPerDay  float64 `json:"average_hours_per_day"`
	AverageDaysPerBook  float64 `json:"average_days_per_book"`
	AverageHoursPerBook float64 `json:"average_hours_per_book"`
	ProjectedBooksLeft  int     `json:"projected_books_left"`
	YearsLeft           float64 `json:"years_left"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
