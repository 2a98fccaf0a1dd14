// Package history records organize and reverse runs in a local SQLite
// database so users can audit what the tool has done over time.
//
// One row is written per completed run (mode, directory, pattern, move and
// failure counts, bytes moved, timing). Retention is bounded by the
// history.keep configuration value; older rows are pruned on insert.
package history
