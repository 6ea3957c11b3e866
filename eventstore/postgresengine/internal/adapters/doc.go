// Package adapters hides the differences between pgxpool, database/sql and sqlx
// behind DBAdapter, the small surface the postgres engine needs.
package adapters
