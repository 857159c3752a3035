// Package shared holds helpers used by the tests of several packages.
//
// The testutil subpackage provides a slog handler that captures records for
// assertions, and fixtures for sales exports and catalog directories.
//
//	logger, logs := testutil.NewTestLogger(t)
//	dir := testutil.WriteCatalog(t, map[string][]string{"Adama": {"Alecto"}})
package shared
