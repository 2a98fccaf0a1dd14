// Package config loads, normalizes, and validates TNIVO configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and persists profile changes back to disk.
// The Config type centralizes every knob the CLI needs: log and backup
// directories, collision policy, logging output, history retention, and the
// named regex profiles.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical collision policies, and clear validation errors.
package config
