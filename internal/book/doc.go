// Package book owns the audiobook records, annual goals, and user settings
// that every calculator consumes, plus their SQLite persistence.
//
// The store supplies immutable snapshots: List returns value copies, and the
// calculators in pace, goals, and stats never write back. Data-entry
// validation happens here at the store boundary so the calculators can assume
// positive durations and reading speeds throughout.
package book
