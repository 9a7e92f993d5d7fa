// Package api serves the read-only stats HTTP API behind `shelfpace serve`.
//
// Endpoints return the same derived values the CLI renders: per-book pace
// snapshots, goal progress, per-year statistics, and lifetime aggregates.
// Every request captures a single reference time and threads it through all
// calculators so related numbers in one response never skew. An optional
// bearer token from config gates access.
package api
