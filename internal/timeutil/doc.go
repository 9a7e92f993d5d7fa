// Package timeutil provides the temporal arithmetic and duration formatting
// shared by the pace, goals, and stats calculators.
//
// All day counts are fractional: DaysBetween divides the millisecond interval
// between two instants by a fixed 24-hour day, so callers receive sub-day
// precision. The formatting helpers own the rounding rules for user-facing
// durations and reading speeds; downstream code must not re-round their output.
package timeutil
