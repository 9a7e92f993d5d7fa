// Package pace computes per-book reading pace and completion projections.
//
// Every function takes the reference time as an explicit parameter: callers
// capture time.Now once per logical computation pass and thread it through,
// so related numbers never skew against each other and tests can pin the
// clock. Snapshots are pure derived values: recomputing with the same book
// and reference time yields identical output.
package pace
