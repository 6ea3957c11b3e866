// Package oteladapters implements the observability interfaces of package eventstore on top of
// OpenTelemetry. The circulation daemon wires them into the Postgres engine and into the
// command handlers when OTEL_ENABLED is set.
package oteladapters
