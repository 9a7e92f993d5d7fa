// Package stats aggregates completed books into per-year and lifetime
// summaries and extrapolates remaining lifetime reading capacity.
//
// Grouping is a pure pipeline over an immutable book snapshot: group by
// finish year, derive each year's metrics, then flag column maxima for
// highlighting (ties all get flagged). Lifetime hours-per-day is a pooled
// ratio of sums, weighting longer books more heavily; the per-year figures
// stay simple ratios. That asymmetry is intentional and must survive edits.
package stats
