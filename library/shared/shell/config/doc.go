// Package config loads the service configuration from the environment and builds the
// infrastructure it describes: Postgres connections for the pgx, database/sql and sqlx
// adapters, and the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
