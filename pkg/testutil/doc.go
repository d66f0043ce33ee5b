// Package testutil provides utilities for testing configma components.
//
// Key components:
//   - TestEnvironment: an isolated home directory, repository and XDG
//     directories on the real filesystem, with environment variables
//     pointed at them for the duration of the test
//   - Builders for home files, repo entries and stub directories
//   - Assertions for symlinks and file contents
//
// configma's subject is symlinks, so tests run against the real
// filesystem in a temporary directory rather than an in-memory one.
// All test data should be defined inline, not in external files.
package testutil
