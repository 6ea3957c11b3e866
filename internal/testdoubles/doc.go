// Package testdoubles contains spies for the observability interfaces of package eventstore
// and for slog, shared by the tests of several packages.
package testdoubles
