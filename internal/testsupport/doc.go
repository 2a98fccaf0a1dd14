// Package testsupport provides shared helpers for package tests: temp-backed
// configurations and quick file fixtures.
package testsupport
