package adapters

import (
	"context"
	"errors"
)

// ErrSerializationFailure is returned by ExecSerializable when Postgres aborted the
// transaction with SQLSTATE 40001.
var ErrSerializationFailure = errors.New("serialization failure")

// DBAdapter defines the database operations needed by the event store.
type DBAdapter interface {
	// Query runs a read. Under eventual consistency it may be served by a replica.
	Query(ctx context.Context, query string) (DBRows, error)

	// Exec runs a statement outside an explicit transaction.
	Exec(ctx context.Context, query string) (DBResult, error)

	// ExecSerializable runs a statement in its own SERIALIZABLE transaction.
	ExecSerializable(ctx context.Context, query string) (DBResult, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
