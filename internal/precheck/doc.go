// Package precheck verifies run prerequisites before any file is touched:
// the target directory exists and is accessible, the journal can be appended,
// and the backup directory is writable when backups are requested.
//
// Checks return pass/fail results rather than errors so the CLI can render
// every failure at once instead of stopping at the first.
package precheck
