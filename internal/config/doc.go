// Package config loads, normalizes, and validates shelfpace configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads the TOML file at ~/.config/shelfpace/config.toml or a
// project-local shelfpace.toml. The Config type centralizes every knob the
// CLI and API server need: data/log directories, the stats API bind address,
// Plex library connection details, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
