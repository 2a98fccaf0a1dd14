// Package errs defines the sentinel error markers shared by the organizer
// phases and the CLI.
//
// The Wrap helper tags failures with a marker (validation, configuration,
// not found, conflict, transient) and a phase/operation/message trail so
// callers can classify errors with errors.Is while users still see a readable
// chain of context.
//
// Use these helpers when adding new operations so error handling stays
// uniform across the command surface.
package errs
