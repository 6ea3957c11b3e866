// Package memengine is an in-process eventstore engine.
//
// It implements the same Query/Append contract as postgresengine: events get
// a gapless sequence number, predicates match top-level string values of the
// JSON payload, and an Append succeeds only if the max sequence number of the
// events matching its filter is still the expected one. All appended events of
// one call become visible together.
//
// It backs the unit tests of the command and query features and the
// "memory" backend of cmd/circulationd.
package memengine
