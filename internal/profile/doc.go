// Package profile manages the named regex profiles stored in the TNIVO
// configuration.
//
// Profiles let users reuse organize patterns by name instead of retyping
// them. The Manager persists every change back to the config file and
// supports exchanging profiles with other machines through a small JSON
// format (a list of name/regex pairs).
package profile
