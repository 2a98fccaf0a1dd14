// Package logging builds the slog loggers used across the organizer and CLI.
//
// Two handler formats are supported: a console handler that renders compact
// "TIME LEVEL component: message key=value" lines for terminal use, and a JSON
// handler for machine consumption. Attribute helpers and standardized field
// keys (component, run_id, directory) keep log output uniform across packages.
//
// Construct loggers through New (or NewNop in tests) so every component shares
// the same level parsing, output fan-out, and formatting rules.
package logging
