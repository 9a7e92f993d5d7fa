// Package logging constructs the slog loggers used across shelfpace.
//
// Two handler formats are supported: a human-oriented console handler for
// interactive CLI runs and a JSON handler for log files and machine
// consumers. NewFromConfig wires the format, level, and optional log file
// from application config so commands obtain a ready logger in one call.
package logging
