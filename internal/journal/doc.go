// Package journal persists the append-only move log that reversal replays.
//
// Each organized directory carries its own journal file (.tnivo.journal)
// holding one JSON object per line: run ID, action, source, destination, and
// timestamp. Appends happen only after the corresponding move succeeded, so
// replaying the file last-to-first restores the directory to its prior state.
// Malformed lines are counted and skipped rather than aborting a reversal.
package journal
