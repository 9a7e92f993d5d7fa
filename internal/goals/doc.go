// Package goals compares actual book completions against a linear annual
// target and projects year-end totals.
//
// Expectation is pure linear interpolation across the year with no
// seasonality. The target-pace projection deliberately assumes a fixed 2.0x
// reading speed independent of any book's configured speed; the displayed
// numbers depend on that constant, so it must not be "corrected" to per-book
// speeds.
package goals
